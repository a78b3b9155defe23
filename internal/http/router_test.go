package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendly/internal/account"
	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/export"
	apihttp "github.com/MrJamesThe3rd/spendly/internal/http"
	accountHandler "github.com/MrJamesThe3rd/spendly/internal/http/account"
	"github.com/MrJamesThe3rd/spendly/internal/http/auth"
	categoryHandler "github.com/MrJamesThe3rd/spendly/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/spendly/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendly/internal/http/importcsv"
	txHandler "github.com/MrJamesThe3rd/spendly/internal/http/transaction"
	"github.com/MrJamesThe3rd/spendly/internal/importer"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type accountRepo []account.Account

func (a accountRepo) ListAccounts(context.Context) ([]account.Account, error) { return a, nil }

func (a accountRepo) CreateAccount(_ context.Context, acc *account.Account) error {
	acc.ID = "a-new"
	return nil
}

var directory = []category.Category{
	{ID: "c-other", Name: "Other"},
	{ID: "c-groceries", Name: "Groceries", LocalizedName: new("Alimentari")},
	{ID: "c-uncategorized", Name: "Non classificato"},
}

type fixture struct {
	txRepo *transaction.MockRepository
	router http.Handler
}

func newFixture(t *testing.T, authenticate func(http.Handler) http.Handler) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	txRepo := transaction.NewMockRepository(ctrl)
	catRepo := category.NewMockRepository(ctrl)
	catRepo.EXPECT().ListCategories(gomock.Any()).Return(directory, nil).AnyTimes()

	var (
		transactions = transaction.NewService(txRepo)
		categories   = category.NewService(catRepo, "Non classificato")
		accounts     = account.NewService(accountRepo{{ID: "a-1", Name: "Checking", Type: account.TypeChecking}})
		imports      = importer.NewService(transactions, categories, accounts, importer.Options{
			Placeholder:    "Transazione",
			MaxUploadBytes: 1 << 20,
		})
		exports = export.NewService(transactions, categories, accounts)
	)

	router := apihttp.New(apihttp.Handlers{
		Transactions: txHandler.NewHandler(transactions, categories),
		Import:       importHandler.NewHandler(imports),
		Categories:   categoryHandler.NewHandler(categories),
		Accounts:     accountHandler.NewHandler(accounts),
		Export:       exportHandler.NewHandler(exports),
	}, authenticate, []string{"*"})

	return &fixture{txRepo: txRepo, router: router}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

const sampleCSV = `Date,Description,Amount,Category
15/03/2024,"Supermarket, downtown",45.20,Alimentari
2024-03-16,,-12,Unknown
`

func uploadRequest(t *testing.T, path, contentType, body string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="statement.csv"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)

	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func mappingJSON(t *testing.T) string {
	t.Helper()

	b, err := json.Marshal(importer.ColumnMapping{
		DateColumn:        "Date",
		DescriptionColumn: "Description",
		AmountColumn:      "Amount",
		CategoryColumn:    new("Category"),
		DefaultCategoryID: "c-other",
		DefaultAccountID:  "a-1",
	})
	require.NoError(t, err)

	return string(b)
}

func TestImport_Headers(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(uploadRequest(t, "/api/v1/import/headers", "text/csv", sampleCSV, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Headers []string `json:"headers"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Date", "Description", "Amount", "Category"}, resp.Headers)
}

func TestImport_Preview(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(uploadRequest(t, "/api/v1/import/preview", "text/csv", sampleCSV, map[string]string{
		"mapping": mappingJSON(t),
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Count      int                  `json:"count"`
		Candidates []importer.Candidate `json:"candidates"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 2, resp.Count)

	assert.Equal(t, "c-groceries", resp.Candidates[0].CategoryID)
	assert.Equal(t, transaction.TrustPreselected, resp.Candidates[0].TrustState)
	assert.Equal(t, "Transazione 2", resp.Candidates[1].Description)
	assert.Equal(t, transaction.TrustMissing, resp.Candidates[1].TrustState)
}

func TestImport_PreviewErrors(t *testing.T) {
	type testCase struct {
		name        string
		contentType string
		body        string
		mapping     string
		wantStatus  int
	}

	tests := []testCase{
		{
			name:        "Not a CSV",
			contentType: "application/pdf",
			body:        sampleCSV,
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "Empty file",
			contentType: "text/csv",
			body:        "",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "Unknown column",
			contentType: "text/csv",
			body:        sampleCSV,
			mapping:     `{"date_column":"Booked","description_column":"Description","amount_column":"Amount","default_category_id":"c-other","default_account_id":"a-1"}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "Malformed mapping",
			contentType: "text/csv",
			body:        sampleCSV,
			mapping:     "{",
			wantStatus:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping := tt.mapping
			if mapping == "" {
				mapping = mappingJSON(t)
			}

			f := newFixture(t, nil)
			rec := f.do(uploadRequest(t, "/api/v1/import/preview", tt.contentType, tt.body, map[string]string{
				"mapping": mapping,
			}))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestImport_SubmitPartialFailure(t *testing.T) {
	f := newFixture(t, nil)

	f.txRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			if tx.Description == "Bakery" {
				return errors.New("connection refused")
			}

			tx.ID = uuid.New()

			return nil
		}).
		Times(2)

	body := `{"candidates":[
		{"date":"2024-03-15","description":"Supermarket","amount":"-45.20","category_id":"c-groceries","account_id":"a-1","imported_category_raw":"Alimentari"},
		{"date":"2024-03-16","description":"Bakery","amount":"-3","category_id":"c-other","account_id":"a-1"}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(req)
	assert.Equal(t, http.StatusBadGateway, rec.Code, "failures without a status report a bad gateway")

	var resp struct {
		Imported int    `json:"imported"`
		Error    string `json:"error"`
		Failures []struct {
			Index   int    `json:"index"`
			Message string `json:"message"`
		} `json:"failures"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, "import failed: connection refused", resp.Error)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, 1, resp.Failures[0].Index)
}

func TestImport_SubmitIgnoresClientTrust(t *testing.T) {
	f := newFixture(t, nil)

	f.txRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, "Kept", tx.Description)
			assert.False(t, tx.Confirmed)
			assert.Nil(t, tx.ImportedCategoryRaw, "a label that matches no category is not stored")

			tx.ID = uuid.New()

			return nil
		})

	body := `{"candidates":[
		{"date":"2024-03-15","description":"Kept","amount":"-1","category_id":"c-other","account_id":"a-1","imported_category_raw":"Invented","confirmed":true},
		{"date":"2024-03-15","description":"X","amount":"-1","category_id":"does-not-exist","account_id":"a-1","confirmed":true}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Imported int `json:"imported"`
		Failures []struct {
			Index   int    `json:"index"`
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"failures"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 1, resp.Imported)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, 1, resp.Failures[0].Index)
	assert.Equal(t, http.StatusBadRequest, resp.Failures[0].Status)
	assert.Contains(t, resp.Failures[0].Message, `unknown category "does-not-exist"`)
}

func TestImport_SubmitEmpty(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/submit", strings.NewReader(`{"candidates":[]}`))
	req.Header.Set("Content-Type", "application/json")

	assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
}

func TestTransactions_ListTrustStates(t *testing.T) {
	f := newFixture(t, nil)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	f.txRepo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{Confirmed: new(false)}).
		Return([]*transaction.Transaction{
			{ID: uuid.New(), Date: day, Amount: decimal.RequireFromString("-1"), CategoryID: "c-groceries", ImportedCategoryRaw: new("Alimentari")},
			{ID: uuid.New(), Date: day, Amount: decimal.RequireFromString("-2"), CategoryID: "c-uncategorized", ImportedCategoryRaw: new("Non classificato")},
			{ID: uuid.New(), Date: day, Amount: decimal.RequireFromString("-3"), CategoryID: "c-other"},
		}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/transactions?confirmed=false", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		Date       string `json:"date"`
		TrustState string `json:"trust_state"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 3)

	assert.Equal(t, "2024-03-15", resp[0].Date)
	assert.Equal(t, "preselected", resp[0].TrustState)
	assert.Equal(t, "missing", resp[1].TrustState)
	assert.Equal(t, "missing", resp[2].TrustState)
}

func TestTransactions_CreateIsConfirmed(t *testing.T) {
	f := newFixture(t, nil)

	f.txRepo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			tx.ID = uuid.New()
			return nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(
		`{"amount":"-9.90","description":"Pizza","date":"2024-04-01","category_id":"c-other","account_id":"a-1"}`,
	))
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Confirmed  bool   `json:"confirmed"`
		TrustState string `json:"trust_state"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Confirmed)
	assert.Equal(t, "confirmed", resp.TrustState)
}

func TestTransactions_Confirm(t *testing.T) {
	f := newFixture(t, nil)

	id := uuid.New()
	categoryID := "c-groceries"

	gomock.InOrder(
		f.txRepo.EXPECT().ConfirmTransaction(gomock.Any(), id, &categoryID).Return(nil),
		f.txRepo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{
			ID:         id,
			CategoryID: categoryID,
			Confirmed:  true,
		}, nil),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+id.String()+"/confirm", strings.NewReader(`{"category_id":"c-groceries"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"trust_state":"confirmed"`)
}

func TestTransactions_ConfirmNotFound(t *testing.T) {
	f := newFixture(t, nil)

	f.txRepo.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any(), gomock.Nil()).Return(transaction.ErrNotFound)

	rec := f.do(httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+uuid.NewString()+"/confirm", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_CSV(t *testing.T) {
	f := newFixture(t, nil)

	f.txRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
		{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Description: "Rent", Amount: decimal.RequireFromString("-800"), CategoryID: "c-other", AccountID: "a-1", Confirmed: true},
	}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/export/csv?start_date=2024-03-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Date,Description,Amount,Category,Account,Status\n2024-03-15,Rent,-800,Other,Checking,confirmed\n", rec.Body.String())
}

func TestCategories_List(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		ID            string `json:"id"`
		Uncategorized bool   `json:"uncategorized"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 3)

	assert.Equal(t, "c-other", resp[0].ID)
	assert.True(t, resp[2].Uncategorized)
}

func TestAccounts_CreateValidation(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name":"Wallet","type":"savings"}`))
	req.Header.Set("Content-Type", "application/json")

	assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
}

func TestAuthRequired(t *testing.T) {
	secret := []byte("s3cret")
	f := newFixture(t, auth.Middleware(secret, nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.Issue(secret, "user-1", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, f.do(req).Code)

	assert.Equal(t, http.StatusNoContent, f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
}
