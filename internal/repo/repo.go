package repo

import (
	"github.com/akshatgg/E--Library-sub002/internal/pg"
	accountrepo "github.com/akshatgg/E--Library-sub002/internal/repo/account-repo"
	txnrepo "github.com/akshatgg/E--Library-sub002/internal/repo/txn-repo"
	"github.com/akshatgg/E--Library-sub002/internal/service/ledgerservice"
)

type Repositories struct {
	AccountRepo ledgerservice.AccountRepo
	TxnRepo     ledgerservice.TxnRepo
}

func New(conn pg.Database) *Repositories {
	accountRepo := accountrepo.New(conn)
	txnRepo := txnrepo.New(conn)

	return &Repositories{
		AccountRepo: accountRepo,
		TxnRepo:     txnRepo,
	}
}
