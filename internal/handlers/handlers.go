package handlers

import (
	"net/http"

	_ "github.com/akshatgg/E--Library-sub002/docs"
	balancehandlers "github.com/akshatgg/E--Library-sub002/internal/handlers/balance"
	purchasehandlers "github.com/akshatgg/E--Library-sub002/internal/handlers/purchase"
	"github.com/akshatgg/E--Library-sub002/internal/service"
	"github.com/akshatgg/E--Library-sub002/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Spend(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type PurchaseHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	ReportFailure(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	BalanceHandler  BalanceHandler
	PurchaseHandler PurchaseHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		BalanceHandler:  balancehandlers.New(s.CreditService),
		PurchaseHandler: purchasehandlers.New(s.PurchaseService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Post("/spend", h.BalanceHandler.Spend)
			})
			r.Get("/transactions", h.BalanceHandler.GetTransactions)
			r.Route("/purchase", func(r chi.Router) {
				r.Post("/create-order", h.PurchaseHandler.CreateOrder)
				r.Post("/verify", h.PurchaseHandler.Verify)
				r.Post("/failed", h.PurchaseHandler.ReportFailure)
			})
		})
	})

	return r
}
