package http_test

import (
	"context"
	"encoding/json"
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregator"
	"github.com/MrJamesThe3rd/gigdash/internal/auth"
	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/gigdash/internal/budget/store"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
	gigdashHttp "github.com/MrJamesThe3rd/gigdash/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/gigdash/internal/http/budget"
	dashboardHandler "github.com/MrJamesThe3rd/gigdash/internal/http/dashboard"
	"github.com/MrJamesThe3rd/gigdash/internal/importer"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

var tracked = []string{"Food and Drink", "Transportation", "Shops", "Service"}

const records = `[
	{"transaction_id":"1","date":"2024-01-15","amount":-1000,"category":["Transfer","Payroll"]},
	{"transaction_id":"2","date":"2024-01-20","amount":50,"category":["Food and Drink"]},
	{"transaction_id":"3","date":"2024-02-05","amount":30,"category":["Shops"]},
	{"transaction_id":"4","date":"2024-02-06","amount":200,"category":["Payment","Credit Card"]},
	{"transaction_id":"5","date":"not a date","amount":1}
]`

type fixture struct {
	router   http.Handler
	budgets  *budget.Service
	verifier *auth.Verifier
}

func newFixture(t *testing.T, aggregatorURL string, secret string) fixture {
	t.Helper()

	budgets := budget.NewService(budgetStore.NewFile(filepath.Join(t.TempDir(), "limits.json")), tracked)
	budgets.Init(context.Background())

	source := aggregator.New(aggregator.Config{BaseURL: aggregatorURL, Timeout: 5 * time.Second})
	dashboards := dashboard.NewService(transaction.NewService(source), budgets, nil)

	opts := gigdashHttp.Options{CORSOrigins: []string{"http://localhost:3000"}}

	var verifier *auth.Verifier
	if secret != "" {
		verifier = auth.NewVerifier(auth.Config{Secret: secret})
		opts.Verifier = verifier
	}

	router := gigdashHttp.New(
		dashboardHandler.NewHandler(dashboards, importer.NewService(), dashboardHandler.Defaults{
			Lookback:   90 * 24 * time.Hour,
			IncomeGoal: decimal.NewFromInt(6000),
		}),
		budgetHandler.NewHandler(budgets),
		opts,
	)

	return fixture{router: router, budgets: budgets, verifier: verifier}
}

func do(t *testing.T, h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

type dashboardBody struct {
	Transactions int `json:"transactions"`
	Monthly      []struct {
		Key     string          `json:"key"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	} `json:"monthly"`
	ExpenseCategories []struct {
		Category string          `json:"category"`
		Total    decimal.Decimal `json:"total"`
	} `json:"expense_categories"`
	Daily   map[string]json.RawMessage `json:"daily"`
	Budgets []struct {
		Category   string              `json:"category"`
		Limit      decimal.NullDecimal `json:"limit"`
		Percentage decimal.NullDecimal `json:"percentage"`
		OverBudget bool                `json:"over_budget"`
		Display    string              `json:"display"`
	} `json:"budgets"`
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) dashboardBody {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body dashboardBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, "http://unused", "secret")

	rec := do(t, f.router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDashboard_Build(t *testing.T) {
	f := newFixture(t, "http://unused", "")

	_, err := f.budgets.SetLimit(context.Background(), "Food and Drink", "40")
	require.NoError(t, err)

	body := decodeDashboard(t, do(t, f.router, http.MethodPost, "/api/v1/dashboard", records, nil))

	assert.Equal(t, 4, body.Transactions)
	require.Len(t, body.Monthly, 2)
	assert.Equal(t, "2024-01", body.Monthly[0].Key)
	assert.True(t, decimal.NewFromInt(1000).Equal(body.Monthly[0].Income))
	require.Len(t, body.ExpenseCategories, 2)
	assert.Equal(t, "Food and Drink", body.ExpenseCategories[0].Category)
	assert.Len(t, body.Daily, 3)

	require.Len(t, body.Budgets, 4)
	assert.True(t, body.Budgets[0].OverBudget)
	assert.True(t, decimal.NewFromInt(100).Equal(body.Budgets[0].Percentage.Decimal))
	assert.Equal(t, "$50.00 / $40.00", body.Budgets[0].Display)
	assert.False(t, body.Budgets[1].Limit.Valid)
	assert.Equal(t, "$0.00 / Not Set", body.Budgets[1].Display)
}

func TestDashboard_BuildRejects(t *testing.T) {
	f := newFixture(t, "http://unused", "")

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"MalformedBody", "/api/v1/dashboard", `{"transactions":`},
		{"BadTimeframe", "/api/v1/dashboard?timeframe=year", records},
		{"BadGoal", "/api/v1/dashboard?goal=lots", records},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, f.router, http.MethodPost, tt.target, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func upload(t *testing.T, h http.Handler, filename, format, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	if format != "" {
		require.NoError(t, mw.WriteField("format", format))
	}

	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestDashboard_Upload(t *testing.T) {
	f := newFixture(t, "http://unused", "")

	csv := "transaction_id,date,amount,category\n" +
		"a,2024-01-15,-1000,Transfer > Payroll\n" +
		"b,2024-01-20,50,Food and Drink\n"

	t.Run("CSVByExtension", func(t *testing.T) {
		body := decodeDashboard(t, upload(t, f.router, "export.csv", "", csv))

		assert.Equal(t, 2, body.Transactions)
		require.Len(t, body.ExpenseCategories, 1)
		assert.Equal(t, "Food and Drink", body.ExpenseCategories[0].Category)
	})

	t.Run("JSONByField", func(t *testing.T) {
		body := decodeDashboard(t, upload(t, f.router, "export.txt", "json", records))
		assert.Equal(t, 4, body.Transactions)
	})

	t.Run("MissingFile", func(t *testing.T) {
		rec := upload(t, f.router, "", "csv", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		rec := upload(t, f.router, "export.csv", "xml", csv)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDashboard_Load(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req["start_date"] != "2024-01-01" || req["end_date"] != "2024-02-29" {
			http.Error(w, fmt.Sprintf("unexpected window %v", req), http.StatusBadRequest)
			return
		}

		fmt.Fprintf(w, `{"transactions":%s}`, records)
	}))
	defer upstream.Close()

	f := newFixture(t, upstream.URL, "")

	t.Run("Success", func(t *testing.T) {
		rec := do(t, f.router, http.MethodGet, "/api/v1/dashboard?item_id=item-1&start_date=2024-01-01&end_date=2024-02-29", "", nil)

		body := decodeDashboard(t, rec)
		assert.Equal(t, 4, body.Transactions)
	})

	t.Run("MissingItem", func(t *testing.T) {
		rec := do(t, f.router, http.MethodGet, "/api/v1/dashboard", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadDate", func(t *testing.T) {
		rec := do(t, f.router, http.MethodGet, "/api/v1/dashboard?item_id=a&start_date=01-01-2024", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvertedWindow", func(t *testing.T) {
		rec := do(t, f.router, http.MethodGet, "/api/v1/dashboard?item_id=a&start_date=2024-03-01&end_date=2024-01-01", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		rec := do(t, f.router, http.MethodGet, "/api/v1/dashboard?item_id=a&start_date=2023-01-01&end_date=2023-02-01", "", nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestBudgets(t *testing.T) {
	f := newFixture(t, "http://unused", "")

	rec := do(t, f.router, http.MethodPut, "/api/v1/budgets/Food%20and%20Drink", `{"limit":"40"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"category":"Food and Drink","limit":"40"}`, rec.Body.String())

	rec = do(t, f.router, http.MethodPut, "/api/v1/budgets/Shops", `{"limit":12.5}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, f.router, http.MethodGet, "/api/v1/budgets", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"tracked":["Food and Drink","Transportation","Shops","Service"],
		"limits":{"Food and Drink":"40","Shops":"12.5"}
	}`, rec.Body.String())

	rec = do(t, f.router, http.MethodDelete, "/api/v1/budgets/Shops", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := f.budgets.Limits()["Shops"]
	assert.False(t, ok)
}

func TestBudgets_Rejects(t *testing.T) {
	f := newFixture(t, "http://unused", "")

	tests := []struct {
		name string
		body string
	}{
		{"Negative", `{"limit":"-5"}`},
		{"NotANumber", `{"limit":"forty"}`},
		{"Missing", `{}`},
		{"NotJSON", `limit=40`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, f.router, http.MethodPut, "/api/v1/budgets/Shops", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, f.budgets.Limits(), "rejected input leaves limits untouched")
}

func TestAuth(t *testing.T) {
	f := newFixture(t, "http://unused", "secret")

	rec := do(t, f.router, http.MethodGet, "/api/v1/budgets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := f.verifier.Issue("user-1", "")
	require.NoError(t, err)

	rec = do(t, f.router, http.MethodGet, "/api/v1/budgets", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)
}
