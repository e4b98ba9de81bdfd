package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/ledger/src/internal/adapter/http/controller"
	"github.com/api-sage/ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledger/src/internal/commons"
	"github.com/api-sage/ledger/src/internal/domain"
	"github.com/api-sage/ledger/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededMux(t *testing.T) *http.ServeMux {
	t.Helper()

	accountRepo := memory.NewAccountRepository()
	transactionRepo := memory.NewTransactionRepository(memory.NewSequence())
	require.NoError(t, memory.SeedSampleData(context.Background(), accountRepo, transactionRepo))

	locks := services.NewAccountLocks()
	mux := http.NewServeMux()
	controller.NewAccountController(services.NewAccountService(accountRepo, locks, nil)).RegisterRoutes(mux, nil)
	controller.NewTransactionController(services.NewTransferService(accountRepo, transactionRepo, locks, nil)).RegisterRoutes(mux, nil)

	return mux
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) commons.ErrorResponse {
	t.Helper()

	var body commons.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestListAccountsReturnsSeededAccounts(t *testing.T) {
	rr := do(t, newSeededMux(t), http.MethodGet, "/accounts", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"id":1111,"name":"account 1","balance":100,"currency":"EUR"},
		{"id":2222,"name":"account 2","balance":200,"currency":"USD"},
		{"id":3333,"name":"account 3","balance":300,"currency":"GBP"}
	]`, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "\n  ", "responses are pretty printed")
}

func TestGetAccount(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodGet, "/accounts/2222", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":2222,"name":"account 2","balance":200,"currency":"USD"}`, rr.Body.String())

	rr = do(t, mux, http.MethodGet, "/accounts/9999", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, commons.ErrorResponse{
		Error: "Account Number not found in the DB: 9999",
		Code:  http.StatusNotFound,
		Path:  "/accounts/9999",
	}, decodeError(t, rr))

	rr = do(t, mux, http.MethodGet, "/accounts/abc", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid Account Number: abc", decodeError(t, rr).Error)
}

func TestCreateAccount(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodPost, "/accounts", `{"id":4444,"name":"account 4","balance":10.5,"currency":"EUR"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":4444,"name":"account 4","balance":10.5,"currency":"EUR"}`, rr.Body.String())

	rr = do(t, mux, http.MethodPost, "/accounts", `{"id":1111,"name":"again","balance":1,"currency":"EUR"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Account number already exists in the DB!", decodeError(t, rr).Error)

	rr = do(t, mux, http.MethodGet, "/accounts/1111", "")
	assert.JSONEq(t, `{"id":1111,"name":"account 1","balance":100,"currency":"EUR"}`, rr.Body.String())
}

func TestCreateAccountMalformedBody(t *testing.T) {
	mux := newSeededMux(t)

	for _, body := range []string{
		`not json`,
		`{"id":"abc","currency":"EUR"}`,
		`{"id":5,"currency":"NOPE"}`,
		`{"id":5,"balance":-3,"currency":"EUR"}`,
	} {
		rr := do(t, mux, http.MethodPost, "/accounts", body)
		require.Equal(t, http.StatusUnsupportedMediaType, rr.Code, body)
		assert.True(t, strings.HasPrefix(decodeError(t, rr).Error, "Unable to parse Account JSON request body! Cause: "), body)
	}
}

func TestDeleteAccount(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodDelete, "/accounts/3333", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(t, mux, http.MethodDelete, "/accounts/3333", "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, mux, http.MethodGet, "/transactions/1", "")
	require.Equal(t, http.StatusOK, rr.Code, "transactions survive account deletion")
}

func TestDepositThenOverdrawnWithdraw(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodPut, "/accounts/1111/deposit/50", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1111,"name":"account 1","balance":150,"currency":"EUR"}`, rr.Body.String())

	rr = do(t, mux, http.MethodPut, "/accounts/1111/withdraw/10000", "")
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Account balance < amount: 10000", decodeError(t, rr).Error)

	rr = do(t, mux, http.MethodGet, "/accounts/1111", "")
	assert.JSONEq(t, `{"id":1111,"name":"account 1","balance":150,"currency":"EUR"}`, rr.Body.String())
}

func TestAccountOperationRejectsBadInput(t *testing.T) {
	mux := newSeededMux(t)

	cases := []struct {
		target  string
		status  int
		message string
	}{
		{target: "/accounts/1111/deposit/1.5", status: http.StatusBadRequest, message: "Invalid amount: 1.5"},
		{target: "/accounts/x/deposit/1", status: http.StatusBadRequest, message: "Invalid Account Number: x"},
		{target: "/accounts/9999/withdraw/1", status: http.StatusNotFound, message: "Account Number not found in the DB: 9999"},
		{target: "/accounts/1111/withdraw/-5", status: http.StatusConflict, message: "Incorrect amount! Amounts cannot be negative."},
	}

	for _, tc := range cases {
		rr := do(t, mux, http.MethodPut, tc.target, "")
		require.Equal(t, tc.status, rr.Code, tc.target)
		assert.Equal(t, tc.message, decodeError(t, rr).Error, tc.target)
	}

	rr := do(t, mux, http.MethodGet, "/accounts/1111", "")
	assert.JSONEq(t, `{"id":1111,"name":"account 1","balance":100,"currency":"EUR"}`, rr.Body.String())
}

func TestCreateTransaction(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodPost, "/transactions", `{"fromAccount":2222,"toAccount":1111,"amount":12,"currency":"EUR","description":"rent"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":2,"fromAccount":2222,"toAccount":1111,"amount":12,"currency":"EUR","description":"rent","status":"SUCCESSFUL"}`, rr.Body.String())

	rr = do(t, mux, http.MethodGet, "/accounts/2222", "")
	assert.JSONEq(t, `{"id":2222,"name":"account 2","balance":188,"currency":"USD"}`, rr.Body.String())
	rr = do(t, mux, http.MethodGet, "/accounts/1111", "")
	assert.JSONEq(t, `{"id":1111,"name":"account 1","balance":112,"currency":"EUR"}`, rr.Body.String())
}

func TestCreateTransactionRejections(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{name: "duplicate", body: `{"id":0,"fromAccount":2222,"toAccount":1111,"amount":1}`, status: http.StatusConflict, message: "Transaction already exists in the DB!"},
		{name: "missing source", body: `{"fromAccount":9,"toAccount":1111,"amount":1}`, status: http.StatusNotFound, message: "Source Account does not exist!"},
		{name: "missing destination", body: `{"fromAccount":2222,"toAccount":9,"amount":1}`, status: http.StatusNotFound, message: "Destination Account does not exist!"},
		{name: "negative amount", body: `{"fromAccount":2222,"toAccount":1111,"amount":-5}`, status: http.StatusConflict, message: "Incorrect transaction amount!"},
		{name: "missing amount", body: `{"fromAccount":2222,"toAccount":1111}`, status: http.StatusConflict, message: "Incorrect transaction amount!"},
		{name: "insufficient funds", body: `{"fromAccount":2222,"toAccount":1111,"amount":1000}`, status: http.StatusConflict, message: "Insufficient funds! Unable to process the transfer!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newSeededMux(t)

			rr := do(t, mux, http.MethodPost, "/transactions", tc.body)
			require.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.message, decodeError(t, rr).Error)

			rr = do(t, mux, http.MethodGet, "/transactions", "")
			var listed []map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
			assert.Len(t, listed, 2)

			rr = do(t, mux, http.MethodGet, "/accounts/2222", "")
			assert.JSONEq(t, `{"id":2222,"name":"account 2","balance":200,"currency":"USD"}`, rr.Body.String())
		})
	}
}

func TestCreateTransactionMalformedBody(t *testing.T) {
	rr := do(t, newSeededMux(t), http.MethodPost, "/transactions", `{"fromAccount":"one"}`)

	require.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, rr).Error, "Unable to parse Transaction JSON request body! Cause: "))
}

func TestGetTransaction(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodGet, "/transactions/0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":0,"fromAccount":2222,"toAccount":1111,"amount":12,"currency":"EUR","description":"test transaction 1","status":"SUCCESSFUL"}`, rr.Body.String())

	rr = do(t, mux, http.MethodGet, "/transactions/42", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Transaction not found in the DB: 42", decodeError(t, rr).Error)

	rr = do(t, mux, http.MethodGet, "/transactions/zero", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid Transaction Id: zero", decodeError(t, rr).Error)
}

func TestTransactionsForAccount(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodGet, "/transactions/account/1111", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	rr = do(t, mux, http.MethodGet, "/transactions/account/2222", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	require.Equal(t, http.StatusCreated, do(t, mux, http.MethodPost, "/accounts", `{"id":5555,"currency":"EUR"}`).Code)
	rr = do(t, mux, http.MethodGet, "/transactions/account/5555", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(t, mux, http.MethodGet, "/transactions/account/9999", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Source Account does not exist!", decodeError(t, rr).Error)
}

type failingTransfers struct{}

func (failingTransfers) Transfer(context.Context, domain.TransferRequest) (domain.Transaction, error) {
	return domain.Transaction{}, errors.New("store unavailable")
}

func (failingTransfers) GetTransaction(context.Context, int64) (domain.Transaction, error) {
	return domain.Transaction{}, errors.New("store unavailable")
}

func (failingTransfers) ListTransactions(context.Context) ([]domain.Transaction, error) {
	return nil, errors.New("store unavailable")
}

func (failingTransfers) TransactionsForAccount(context.Context, int64) ([]domain.Transaction, error) {
	return nil, errors.New("store unavailable")
}

func TestTransactionControllerUnexpectedErrors(t *testing.T) {
	mux := http.NewServeMux()
	controller.NewTransactionController(failingTransfers{}).RegisterRoutes(mux, nil)

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/transactions", `{"fromAccount":1,"toAccount":2,"amount":1}`},
		{http.MethodGet, "/transactions", ""},
		{http.MethodGet, "/transactions/1", ""},
		{http.MethodGet, "/transactions/account/1", ""},
	} {
		rr := do(t, mux, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, tc.target)
	}
}

func TestPathIDsAreThirtyTwoBit(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodGet, "/accounts/9999999999", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid Account Number: 9999999999", decodeError(t, rr).Error)

	rr = do(t, mux, http.MethodGet, "/transactions/9999999999", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid Transaction Id: 9999999999", decodeError(t, rr).Error)

	rr = do(t, mux, http.MethodGet, "/transactions/account/9999999999", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, mux, http.MethodPut, "/accounts/1111/deposit/9999999999", "")
	require.Equal(t, http.StatusOK, rr.Code, "amounts keep the 64-bit range")
	assert.JSONEq(t, `{"id":1111,"name":"account 1","balance":10000000099,"currency":"EUR"}`, rr.Body.String())
}

func TestRequestBodyWithTrailingDataIsMalformed(t *testing.T) {
	mux := newSeededMux(t)

	rr := do(t, mux, http.MethodPost, "/accounts", `{"id":4444,"currency":"EUR"}xyz`)
	require.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, rr).Error, "Unable to parse Account JSON request body! Cause: "))

	rr = do(t, mux, http.MethodPost, "/accounts", `{"id":4444,"currency":"EUR"}{"id":5555,"currency":"EUR"}`)
	require.Equal(t, http.StatusUnsupportedMediaType, rr.Code)

	rr = do(t, mux, http.MethodGet, "/accounts/4444", "")
	require.Equal(t, http.StatusNotFound, rr.Code, "a malformed body must not create the account")

	rr = do(t, mux, http.MethodPost, "/transactions", `{"fromAccount":2222,"toAccount":1111,"amount":1} trailing`)
	require.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, rr).Error, "Unable to parse Transaction JSON request body! Cause: "))

	rr = do(t, mux, http.MethodGet, "/accounts/2222", "")
	assert.JSONEq(t, `{"id":2222,"name":"account 2","balance":200,"currency":"USD"}`, rr.Body.String())

	rr = do(t, mux, http.MethodPost, "/accounts", "{\"id\":4444,\"currency\":\"EUR\"}\n")
	require.Equal(t, http.StatusCreated, rr.Code, "trailing whitespace is accepted")
}
