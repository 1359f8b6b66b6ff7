package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sjperalta/kost-listrik-api/internal/config"
	"github.com/sjperalta/kost-listrik-api/internal/handlers"
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/repository"
	"github.com/sjperalta/kost-listrik-api/internal/services"
	"github.com/sjperalta/kost-listrik-api/internal/storage"
	"github.com/sjperalta/kost-listrik-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T, withAuth bool) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DefaultRate:        1500,
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		OperatorUsername:   "admin",
		AllowedOrigins:     []string{"*"},
	}
	if withAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
		require.NoError(t, err)
		cfg.OperatorPasswordHash = string(hash)
	}

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)
	m := metrics.New(prometheus.NewRegistry())

	svcs, err := services.NewServices(context.Background(), repository.NewRepositories(store.NewMemoryStore(), cfg.DefaultRate), worker, files, cfg, m)
	require.NoError(t, err)

	return &testAPI{router: setupRouter(handlers.NewHandlers(svcs, worker), cfg, m)}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_Auth(t *testing.T) {
	api := newTestAPI(t, true)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/health", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/v1/rooms", nil).Code)

	w := api.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "admin", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "admin", "password": "rahasia"})
	require.Equal(t, http.StatusOK, w.Code)
	api.token = decode(t, w)["token"].(string)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/rooms", nil).Code)
}

func TestRouter_BillingFlow(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, http.MethodPost, "/api/v1/rooms", gin.H{"room": gin.H{"number": "101", "owner": "Budi"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID := decode(t, w)["id"].(string)

	w = api.do(t, http.MethodPost, "/api/v1/rooms/"+roomID+"/readings", gin.H{"month": 1, "year": 2024, "startReading": 100, "endReading": 150})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	jan := decode(t, w)
	assert.Equal(t, 75000.0, jan["finalCost"])

	w = api.do(t, http.MethodPost, "/api/v1/readings/"+jan["id"].(string)+"/payments", gin.H{"paymentDate": "2024-02-05", "amountPaid": 100000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	paid := decode(t, w)
	assert.Equal(t, 25000.0, paid["overpayment"])
	assert.Equal(t, "paid", paid["status"])

	w = api.do(t, http.MethodGet, "/api/v1/rooms/"+roomID+"/next_reading", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 150.0, decode(t, w)["startReading"])

	w = api.do(t, http.MethodPost, "/api/v1/readings/preview", gin.H{"roomId": roomID, "startReading": 150, "endReading": 180})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20000.0, decode(t, w)["finalCost"])

	w = api.do(t, http.MethodPost, "/api/v1/rooms/"+roomID+"/readings", gin.H{"month": 2, "year": 2024, "startReading": 150, "endReading": 180})
	require.Equal(t, http.StatusCreated, w.Code)
	feb := decode(t, w)
	assert.Equal(t, 25000.0, feb["creditApplied"])

	w = api.do(t, http.MethodGet, "/api/v1/rooms/"+roomID+"/unpaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["readings"], 1)

	w = api.do(t, http.MethodPost, "/api/v1/rooms/"+roomID+"/payments", gin.H{"amountPaid": 20000})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/rooms/"+roomID+"/payments", gin.H{"amountPaid": 20000})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/reports/monthly?month=2&year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode(t, w)
	assert.Equal(t, 20000.0, report["totalCollected"])

	w = api.do(t, http.MethodGet, "/api/v1/reports/monthly/export?month=1&year=2024&format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "laporan_listrik_2024_01.csv")
	assert.True(t, strings.Contains(w.Body.String(), "Budi"))

	w = api.do(t, http.MethodGet, "/api/v1/reports/years", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"years":[2024]}`, w.Body.String())

	w = api.do(t, http.MethodDelete, "/api/v1/rooms/"+roomID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decode(t, w)["readings"])

	w = api.do(t, http.MethodGet, "/api/v1/rooms/"+roomID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ErrorMapping(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, http.MethodPost, "/api/v1/rooms", gin.H{"number": "101", "owner": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "owner", decode(t, w)["field"])

	w = api.do(t, http.MethodPost, "/api/v1/rooms/missing/readings", gin.H{"month": 1, "year": 2024, "startReading": 0, "endReading": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/rooms/missing/readings", gin.H{"month": 1, "year": 2024, "endReading": 10})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "startReading", decode(t, w)["field"])

	w = api.do(t, http.MethodPost, "/api/v1/readings/missing/payments", gin.H{"paymentDate": "05/02/2024", "amountPaid": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "paymentDate", decode(t, w)["field"])

	w = api.do(t, http.MethodPut, "/api/v1/tariff", gin.H{"ratePerKwh": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(t, http.MethodPut, "/api/v1/tariff", gin.H{"ratePerKwh": 1750})
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(t, http.MethodGet, "/api/v1/tariff", nil)
	assert.JSONEq(t, `{"ratePerKwh":1750}`, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/v1/rooms", gin.H{"number": "102", "owner": "Sari"})
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := decode(t, w)["id"].(string)
	w = api.do(t, http.MethodPost, "/api/v1/rooms/"+roomID+"/readings", gin.H{"month": 1, "year": 2024, "startReading": 0, "endReading": 1e306})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "endReading", decode(t, w)["field"])

	w = api.do(t, http.MethodGet, "/api/v1/reports/monthly?month=abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/reports/monthly/export?month=1&year=2024&format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_BackupAndImport(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, http.MethodPost, "/api/v1/backups", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/import", gin.H{
		"kost_rooms":   []gin.H{{"id": "r1", "number": "A1", "owner": "Rina"}},
		"kost_credits": []gin.H{{"roomId": "r1", "amount": 0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/import", gin.H{
		"kost_rooms": []gin.H{{"id": "r1", "number": "A1", "owner": "Rina"}},
		"kost_rate":  2000,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/v1/import", gin.H{
		"kost_rooms":    []gin.H{{"id": "r1", "number": "A1", "owner": "Rina"}},
		"kost_readings": []gin.H{{"id": "m1", "roomId": "r1", "month": 1, "year": 2024, "startReading": 0, "endReading": 10, "usage": 10, "cost": 20000, "creditApplied": 0, "finalCost": 20000}},
		"kost_payments": []gin.H{{"id": "p1", "readingId": "m1", "paymentDate": "2024-01-15", "amountPaid": 20000}},
		"kost_rate":     2000,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/v1/readings/m1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entry := decode(t, w)
	assert.Equal(t, "paid", entry["status"])
	assert.Equal(t, "2024-01-15T00:00:00Z", entry["payment"].(map[string]any)["paymentDate"])

	w = api.do(t, http.MethodGet, "/api/v1/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dashboard := decode(t, w)
	assert.Equal(t, 1.0, dashboard["totalRooms"])
	assert.Equal(t, 2000.0, dashboard["ratePerKwh"])
}
