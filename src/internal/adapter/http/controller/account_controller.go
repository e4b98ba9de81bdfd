package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/api-sage/ledger/src/internal/adapter/http/models"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/api-sage/ledger/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"GET /accounts":                        c.listAccounts,
		"POST /accounts":                       c.createAccount,
		"GET /accounts/{id}":                   c.getAccount,
		"DELETE /accounts/{id}":                c.deleteAccount,
		"PUT /accounts/{id}/deposit/{amount}":  c.deposit,
		"PUT /accounts/{id}/withdraw/{amount}": c.withdraw,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, wrapHandler(handler, wrap))
	}
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accounts, err := c.service.ListAccounts(r.Context())
	if err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusInternalServerError, "Unable to list accounts", start)
		return
	}

	respond(w, r, http.StatusOK, models.NewAccountResponses(accounts), start)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.AccountRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusUnsupportedMediaType, "Unable to parse Account JSON request body! Cause: "+err.Error(), start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusUnsupportedMediaType, "Unable to parse Account JSON request body! Cause: "+err.Error(), start)
		return
	}

	account, err := c.service.CreateAccount(r.Context(), req.ToDomain())
	if err != nil {
		logError(r, err, logger.Fields{"accountId": *req.ID})
		status, message := accountFailure(err, *req.ID)
		fail(w, r, status, message, start)
		return
	}

	respond(w, r, http.StatusCreated, models.NewAccountResponse(account), start)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := accountID(w, r, start)
	if !ok {
		return
	}

	account, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"accountId": id})
		status, message := accountFailure(err, id)
		fail(w, r, status, message, start)
		return
	}

	respond(w, r, http.StatusOK, models.NewAccountResponse(account), start)
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := accountID(w, r, start)
	if !ok {
		return
	}

	if err := c.service.DeleteAccount(r.Context(), id); err != nil {
		logError(r, err, logger.Fields{"accountId": id})
		status, message := accountFailure(err, id)
		fail(w, r, status, message, start)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	logResponse(r, http.StatusNoContent, nil, start)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	c.accountOperation(w, r, c.service.Deposit)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.accountOperation(w, r, c.service.Withdraw)
}

type accountOperation func(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)

func (c *AccountController) accountOperation(w http.ResponseWriter, r *http.Request, apply accountOperation) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := accountID(w, r, start)
	if !ok {
		return
	}

	units, err := pathInt(r, "amount", amountBits)
	if err != nil {
		logError(r, err, logger.Fields{"accountId": id})
		fail(w, r, http.StatusBadRequest, "Invalid amount: "+r.PathValue("amount"), start)
		return
	}
	amount := decimal.NewFromInt(units)

	account, err := apply(r.Context(), id, amount)
	if err != nil {
		logError(r, err, logger.Fields{"accountId": id, "amount": amount.String()})
		status, message := accountFailure(err, id)
		if errors.Is(err, domain.ErrInsufficientBalance) {
			status, message = http.StatusForbidden, "Account balance < amount: "+amount.String()
		}
		fail(w, r, status, message, start)
		return
	}

	respond(w, r, http.StatusOK, models.NewAccountResponse(account), start)
}

// accountID parses the {id} segment and writes the 400 response on failure.
func accountID(w http.ResponseWriter, r *http.Request, start time.Time) (int64, bool) {
	id, err := pathInt(r, "id", idBits)
	if err != nil {
		logError(r, err, nil)
		fail(w, r, http.StatusBadRequest, "Invalid Account Number: "+r.PathValue("id"), start)
		return 0, false
	}

	return id, true
}

func accountFailure(err error, id int64) (int, string) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, fmt.Sprintf("Account Number not found in the DB: %d", id)
	case errors.Is(err, domain.ErrDuplicateRecord):
		return http.StatusConflict, "Account number already exists in the DB!"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusConflict, "Incorrect amount! Amounts cannot be negative."
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func wrapHandler(handler http.Handler, wrap func(http.Handler) http.Handler) http.Handler {
	if wrap == nil {
		return handler
	}

	return wrap(handler)
}
