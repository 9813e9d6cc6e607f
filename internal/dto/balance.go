package dto

import "time"

type BalanceResponseDTO struct {
	Balance int64 `json:"balance" example:"100"`
}

type SpendRequestDTO struct {
	Amount      int64  `json:"amount" example:"1"`
	Description string `json:"description" example:"Case Law Search"`
}

type InsufficientCreditsDTO struct {
	Message string `json:"message" example:"insufficient credits"`
	Have    int64  `json:"have" example:"3"`
	Need    int64  `json:"need" example:"5"`
}

type TransactionResponseDTO struct {
	TxnID            string     `json:"txn_id" example:"pay_LkTSMeQoUrzJwa"`
	OrderID          string     `json:"order_id" example:"order_LkTQlZZ3L0AsDx"`
	Kind             string     `json:"kind" example:"purchase"`
	Delta            int64      `json:"delta" example:"100"`
	Amount           int64      `json:"amount" example:"899"`
	Status           string     `json:"status" example:"success"`
	Description      string     `json:"description" example:"Purchase of 100 credits"`
	ErrorCode        *string    `json:"error_code,omitempty" example:"USER_CANCELLED"`
	ErrorDescription *string    `json:"error_description,omitempty" example:"checkout closed by user"`
	CreatedAt        time.Time  `json:"created_at" example:"2023-05-09T16:09:57+05:30"`
	FinalizedAt      *time.Time `json:"finalized_at,omitempty" example:"2023-05-09T16:11:03+05:30"`
}
