package domain

import "time"

type TxnKind string

const (
	KindPurchase TxnKind = "purchase"
	KindSpend    TxnKind = "spend"
)

type TxnStatus string

const (
	StatusPending TxnStatus = "pending"
	StatusSuccess TxnStatus = "success"
	StatusFailed  TxnStatus = "failed"
)

type Account struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Transaction is the unit of audit. TxnID carries the gateway payment
// reference once known, otherwise a locally generated identifier.
// A transaction never changes again after reaching a terminal status.
type Transaction struct {
	ID               int        `db:"id"`
	UserID           int        `db:"user_id"`
	TxnID            string     `db:"txn_id"`
	OrderID          string     `db:"order_id"`
	Kind             TxnKind    `db:"kind"`
	Delta            int64      `db:"delta"`
	Amount           int64      `db:"amount"`
	Status           TxnStatus  `db:"status"`
	Description      string     `db:"description"`
	ErrorCode        *string    `db:"error_code"`
	ErrorDescription *string    `db:"error_description"`
	CreatedAt        time.Time  `db:"created_at"`
	FinalizedAt      *time.Time `db:"finalized_at"`
}

func (t *Transaction) Terminal() bool {
	return t.Status == StatusSuccess || t.Status == StatusFailed
}
