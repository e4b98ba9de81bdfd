package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/api-sage/ledger/src/internal/adapter/http/models"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/api-sage/ledger/src/internal/usecase/service_interfaces"
)

type TransactionController struct {
	service service_interfaces.TransferService
}

func NewTransactionController(service service_interfaces.TransferService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"GET /transactions":              c.listTransactions,
		"POST /transactions":             c.createTransaction,
		"GET /transactions/{id}":         c.getTransaction,
		"GET /transactions/account/{id}": c.transactionsForAccount,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, wrapHandler(handler, wrap))
	}
}

// transferStatus maps each rejection reason to its response. Insufficient
// funds is 409 here and 403 on a direct withdraw.
var transferStatus = map[domain.TransferFailure]struct {
	status  int
	message string
}{
	domain.TransferDuplicateTransaction:       {http.StatusConflict, "Transaction already exists in the DB!"},
	domain.TransferSourceAccountNotFound:      {http.StatusNotFound, "Source Account does not exist!"},
	domain.TransferDestinationAccountNotFound: {http.StatusNotFound, "Destination Account does not exist!"},
	domain.TransferInvalidAmount:              {http.StatusConflict, "Incorrect transaction amount!"},
	domain.TransferInsufficientFunds:          {http.StatusConflict, "Insufficient funds! Unable to process the transfer!"},
}

func (c *TransactionController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	transactions, err := c.service.ListTransactions(r.Context())
	if err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusInternalServerError, "Unable to list transactions", start)
		return
	}

	respond(w, r, http.StatusOK, models.NewTransactionResponses(transactions), start)
}

func (c *TransactionController) createTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.TransactionRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusUnsupportedMediaType, "Unable to parse Transaction JSON request body! Cause: "+err.Error(), start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusUnsupportedMediaType, "Unable to parse Transaction JSON request body! Cause: "+err.Error(), start)
		return
	}

	transaction, err := c.service.Transfer(r.Context(), req.ToDomain())
	if err != nil {
		reason, _ := domain.TransferFailureOf(err)
		logError(r, err, logger.Fields{"reason": string(reason)})

		mapped, ok := transferStatus[reason]
		if !ok {
			fail(w, r, http.StatusInternalServerError, "Internal server error", start)
			return
		}
		fail(w, r, mapped.status, mapped.message, start)
		return
	}

	respond(w, r, http.StatusCreated, models.NewTransactionResponse(transaction), start)
}

func (c *TransactionController) getTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathInt(r, "id", idBits)
	if err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusBadRequest, "Invalid Transaction Id: "+r.PathValue("id"), start)
		return
	}

	transaction, err := c.service.GetTransaction(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"transactionId": id})
		if errors.Is(err, domain.ErrRecordNotFound) {
			fail(w, r, http.StatusNotFound, fmt.Sprintf("Transaction not found in the DB: %d", id), start)
			return
		}
		fail(w, r, http.StatusInternalServerError, "Internal server error", start)
		return
	}

	respond(w, r, http.StatusOK, models.NewTransactionResponse(transaction), start)
}

func (c *TransactionController) transactionsForAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := accountID(w, r, start)
	if !ok {
		return
	}

	transactions, err := c.service.TransactionsForAccount(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"accountId": id})
		if errors.Is(err, domain.ErrRecordNotFound) {
			fail(w, r, http.StatusNotFound, "Source Account does not exist!", start)
			return
		}
		fail(w, r, http.StatusInternalServerError, "Internal server error", start)
		return
	}

	respond(w, r, http.StatusOK, models.NewTransactionResponses(transactions), start)
}
