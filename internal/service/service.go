package service

import (
	"github.com/akshatgg/E--Library-sub002/internal/config"
	"github.com/akshatgg/E--Library-sub002/internal/handlers/balance"
	"github.com/akshatgg/E--Library-sub002/internal/handlers/purchase"
	"github.com/akshatgg/E--Library-sub002/internal/pg"
	"github.com/akshatgg/E--Library-sub002/internal/repo"
	creditservice "github.com/akshatgg/E--Library-sub002/internal/service/creditservice"
	ledgerservice "github.com/akshatgg/E--Library-sub002/internal/service/ledgerservice"
	purchaseservice "github.com/akshatgg/E--Library-sub002/internal/service/purchaseservice"
)

type Services struct {
	LedgerService   *ledgerservice.Service
	CreditService   balance.Service
	PurchaseService purchase.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, gw purchaseservice.Gateway) *Services {
	ledgerService := ledgerservice.New(repo.AccountRepo, repo.TxnRepo, txManager)
	creditService := creditservice.New(ledgerService)
	purchaseService := purchaseservice.New(ledgerService, gw, cfg.Packages)

	return &Services{
		LedgerService:   ledgerService,
		CreditService:   creditService,
		PurchaseService: purchaseService,
	}
}
