package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/dto"
	purchaseservice "github.com/akshatgg/E--Library-sub002/internal/service/purchaseservice"
	"github.com/akshatgg/E--Library-sub002/pkg/auth"
	"github.com/akshatgg/E--Library-sub002/pkg/utils"
)

type Service interface {
	CreateOrder(ctx context.Context, userID, credits int, amount int64) (*purchaseservice.CheckoutOrder, error)
	Verify(ctx context.Context, orderID, paymentID, signature string) (*domain.Transaction, error)
	ReportFailure(ctx context.Context, orderID, errCode, errDescription string) (*domain.Transaction, error)
}

type PurchaseHandler struct {
	purchaseService Service
}

func New(purchaseService Service) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// CreateOrder godoc
//
//	@Summary		Create a credit purchase order
//	@Description	Register a gateway order for a credit package and record the pending purchase transaction.
//	@Tags			Purchase
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Requested package"
//	@Success		200		{object}	dto.CreateOrderResponseDTO	"Checkout parameters"
//	@Failure		400		{object}	utils.Response				"Non-positive credits or amount"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		422		{object}	utils.Response				"Amount does not match package price"
//	@Failure		502		{object}	utils.Response				"Payment gateway unavailable"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/purchase/create-order [post]
func (h *PurchaseHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.purchaseService.CreateOrder(r.Context(), userID, req.Credits, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, purchaseservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, purchaseservice.ErrPriceMismatch):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, purchaseservice.ErrGatewayUnavailable):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CreateOrderResponseDTO{
		OrderID:  order.OrderID,
		Credits:  order.Credits,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    order.KeyID,
	})
}

// Verify godoc
//
//	@Summary		Verify a completed payment
//	@Description	Validate the gateway signature and credit the purchased credits exactly once.
//	@Tags			Purchase
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.VerifyRequestDTO		true	"Gateway callback payload"
//	@Success		200		{object}	dto.TransactionResponseDTO	"Finalized transaction"
//	@Failure		400		{object}	utils.Response				"Invalid signature or malformed body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		404		{object}	utils.Response				"Unknown order"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/purchase/verify [post]
func (h *PurchaseHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.purchaseService.Verify(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, purchaseservice.ErrSignatureInvalid):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, purchaseservice.ErrUnknownOrder):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTransactionDTO(txn))
}

// ReportFailure godoc
//
//	@Summary		Report a failed or cancelled payment
//	@Description	Record an explicit gateway failure or user cancellation for a pending order. No credit change.
//	@Tags			Purchase
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ReportFailureRequestDTO	true	"Failure callback payload"
//	@Success		200		{object}	dto.TransactionResponseDTO	"Failed transaction"
//	@Failure		400		{object}	utils.Response				"Malformed body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		404		{object}	utils.Response				"Unknown order"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/purchase/failed [post]
func (h *PurchaseHandler) ReportFailure(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportFailureRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.purchaseService.ReportFailure(r.Context(), req.OrderID, req.ErrorCode, req.ErrorDescription)
	if err != nil {
		switch {
		case errors.Is(err, purchaseservice.ErrUnknownOrder):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTransactionDTO(txn))
}

func toTransactionDTO(txn *domain.Transaction) dto.TransactionResponseDTO {
	return dto.TransactionResponseDTO{
		TxnID:            txn.TxnID,
		OrderID:          txn.OrderID,
		Kind:             string(txn.Kind),
		Delta:            txn.Delta,
		Amount:           txn.Amount,
		Status:           string(txn.Status),
		Description:      txn.Description,
		ErrorCode:        txn.ErrorCode,
		ErrorDescription: txn.ErrorDescription,
		CreatedAt:        txn.CreatedAt,
		FinalizedAt:      txn.FinalizedAt,
	}
}
