package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/akshatgg/E--Library-sub002/internal/domain"
	"github.com/akshatgg/E--Library-sub002/internal/dto"
	creditservice "github.com/akshatgg/E--Library-sub002/internal/service/creditservice"
	"github.com/akshatgg/E--Library-sub002/internal/service/ledgerservice"
	"github.com/akshatgg/E--Library-sub002/pkg/auth"
	"github.com/akshatgg/E--Library-sub002/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
	Spend(ctx context.Context, userID int, amount int64, description string) (*domain.Transaction, error)
	GetTransactions(ctx context.Context, userID, page int) ([]domain.Transaction, error)
}

type BalanceHandler struct {
	creditService Service
}

func New(creditService Service) *BalanceHandler {
	return &BalanceHandler{
		creditService: creditService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current credit balance
//	@Description	Retrieve the spendable credit balance for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current credit balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.creditService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: balance,
	})
}

// Spend godoc
//
//	@Summary		Spend credits
//	@Description	Debit credits from the user balance for a feature (search, document view, download, form generation).
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SpendRequestDTO				true	"Spend request payload"
//	@Success		200		{object}	dto.TransactionResponseDTO		"Recorded spend transaction"
//	@Failure		400		{object}	utils.Response					"Non-positive amount or malformed body"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		402		{object}	dto.InsufficientCreditsDTO		"Insufficient credits"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/balance/spend [post]
func (h *BalanceHandler) Spend(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.SpendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.creditService.Spend(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		var insufficient *ledgerservice.InsufficientCreditsError
		switch {
		case errors.Is(err, creditservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &insufficient):
			utils.RespondWithJSON(w, http.StatusPaymentRequired, dto.InsufficientCreditsDTO{
				Message: "insufficient credits",
				Have:    insufficient.Have,
				Need:    insufficient.Need,
			})
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTransactionDTO(txn))
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Get the transaction history for the authenticated user, most recent first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int	false	"Page number, starting at 1"
//	@Success		200		{array}		dto.TransactionResponseDTO	"Transaction history"
//	@Success		204		{object}	utils.Response				"No transactions"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	txns, err := h.creditService.GetTransactions(r.Context(), userID, page)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	if len(txns) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No transactions")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(txns))
	for i, txn := range txns {
		txn := txn
		response[i] = toTransactionDTO(&txn)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
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
