package dto

type CreateOrderRequestDTO struct {
	Credits int   `json:"credits" example:"100"`
	Amount  int64 `json:"amount" example:"899"`
}

type CreateOrderResponseDTO struct {
	OrderID  string `json:"order_id" example:"order_LkTQlZZ3L0AsDx"`
	Credits  int    `json:"credits" example:"100"`
	Amount   int64  `json:"amount" example:"899"`
	Currency string `json:"currency" example:"INR"`
	KeyID    string `json:"key_id" example:"rzp_test_key"`
}

type VerifyRequestDTO struct {
	OrderID   string `json:"order_id" example:"order_LkTQlZZ3L0AsDx"`
	PaymentID string `json:"payment_id" example:"pay_LkTSMeQoUrzJwa"`
	Signature string `json:"signature" example:"8f7a0b..."`
}

type ReportFailureRequestDTO struct {
	OrderID          string `json:"order_id" example:"order_LkTQlZZ3L0AsDx"`
	ErrorCode        string `json:"error_code" example:"USER_CANCELLED"`
	ErrorDescription string `json:"error_description" example:"checkout closed by user"`
}
