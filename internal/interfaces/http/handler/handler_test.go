package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appfinance "github.com/carpentry/backend/internal/application/finance"
	appreport "github.com/carpentry/backend/internal/application/report"
	appworkforce "github.com/carpentry/backend/internal/application/workforce"
	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/bootstrap"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/lock"
	"github.com/carpentry/backend/internal/infrastructure/storage"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/middleware"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	tenant uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	log := zaptest.NewLogger(t)
	repos, err := bootstrap.OpenRepositories(&config.Config{}, log)
	require.NoError(t, err)
	svc := bootstrap.NewServices(repos, lock.NewLocalLocker(), storage.NewStubDocumentStorage("http://files.local"), log)

	tenant := uuid.New()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine, router.WithMiddleware(middleware.Identity(middleware.IdentityConfig{DefaultTenantID: tenant}))).
		Register(
			NewRequestHandler(svc.Requests),
			NewWorkOrderHandler(svc.Lifecycle, svc.Payments, nil),
			NewDocumentHandler(svc.Documents),
			NewFinanceHandler(svc.Suppliers, svc.Ledger, svc.Reconciliation),
			NewWorkforceHandler(svc.Workforce),
			NewOverviewHandler(svc.Overview),
		).
		Setup()
	NewSystemHandler("carpentry-backend", "test", repos).Register(engine)

	return &testServer{t: t, engine: engine, tenant: tenant}
}

func (s *testServer) do(method, path string, body any, headers ...string) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

// mustDo fails the test unless the call answers with want, and decodes data into out
func (s *testServer) mustDo(want int, method, path string, body, out any) {
	s.t.Helper()
	code, env := s.do(method, path, body)
	require.Equal(s.t, want, code, "%s %s: %+v", method, path, env.Error)
	if out != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, out))
	}
}

func (s *testServer) quotedOrder(clientCode, total string) appworkorder.WorkOrderResponse {
	s.t.Helper()
	var req appworkorder.RequestResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/requests", gin.H{
		"client_name": "Marta Gómez",
		"phone":       "+54 11 5555-0101",
		"email":       "marta@example.com",
		"description": "Ventana corrediza de aluminio",
	}, &req)

	var order appworkorder.WorkOrderResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/requests/"+req.ID.String()+"/quote", gin.H{
		"client_code": clientCode,
		"total":       total,
	}, &order)
	return order
}

func TestWorkOrderFlow(t *testing.T) {
	s := newTestServer(t)
	order := s.quotedOrder("OBRA-200", "1000")
	assert.Equal(t, "QUOTED", order.Status)
	base := "/api/v1/work-orders/" + order.ID.String()

	var payment appworkorder.PaymentResponse
	s.mustDo(http.StatusOK, http.MethodPut, base+"/payment/discount", gin.H{"percent": "5"}, &payment)
	assert.Equal(t, "950", payment.EffectiveTotal.String())
	s.mustDo(http.StatusOK, http.MethodPut, base+"/payment/deposit", gin.H{"amount": 300}, &payment)
	assert.Equal(t, "650", payment.Balance.String())
	assert.Equal(t, "300", payment.Collected.String())

	code, env := s.do(http.MethodPost, base+"/installation", gin.H{"scheduled_date": "2026-11-02", "team_name": "Equipo Sur"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)

	s.mustDo(http.StatusOK, http.MethodPost, base+"/production", gin.H{"color": "Negro", "line": "Modena"}, &order)
	assert.Equal(t, "IN_PRODUCTION", order.Status)
	require.NotNil(t, order.Checklist)
	assert.Len(t, order.Checklist.Tasks, 4)
	assert.Zero(t, order.TasksDone)

	s.mustDo(http.StatusOK, http.MethodPost, base+"/tasks/task_glass/toggle", nil, &order)
	assert.True(t, order.Checklist.Tasks[1].IsCompleted)
	assert.Equal(t, 1, order.TasksDone)
	s.mustDo(http.StatusOK, http.MethodPut, base+"/tasks/task_glass/note", gin.H{"note": "Vidrio DVH"}, &order)
	s.mustDo(http.StatusOK, http.MethodPost, base+"/logs", gin.H{"text": "Perfiles cortados", "author": "Luis"}, &order)
	assert.Len(t, order.Checklist.Logs, 1)
	s.mustDo(http.StatusOK, http.MethodPut, base+"/production-status", gin.H{"status": "COMPLETE"}, &order)

	code, env = s.do(http.MethodPost, base+"/tasks/task_paint/toggle", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, dto.ErrCodeTaskNotFound, env.Error.Code)

	code, env = s.do(http.MethodPost, base+"/installation", gin.H{"team_name": "Equipo Sur"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeMissingRequiredField, env.Error.Code)

	s.mustDo(http.StatusOK, http.MethodPost, base+"/installation", gin.H{"scheduled_date": "2026-11-02", "team_name": "Equipo Sur"}, &order)
	assert.Equal(t, "IN_INSTALLATION", order.Status)
	s.mustDo(http.StatusOK, http.MethodPut, base+"/installation", gin.H{"scheduled_date": "2026-11-03", "team_name": "Equipo Sur", "notes": "Llevar escalera"}, &order)
	assert.Equal(t, "Llevar escalera", order.Installation.Notes)

	s.mustDo(http.StatusOK, http.MethodPost, base+"/payment/final-toggle", nil, &payment)
	assert.True(t, payment.FinalPaid)
	assert.True(t, payment.Balance.IsZero())

	s.mustDo(http.StatusOK, http.MethodPost, base+"/archive", nil, &order)
	assert.Equal(t, "ARCHIVED", order.Status)
	assert.True(t, order.Installation.IsCompleted)

	code, env = s.do(http.MethodPut, base+"/specs", gin.H{"color": "Blanco"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)

	code, env = s.do(http.MethodPut, base+"/payment/deposit", gin.H{"amount": 999})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)
	code, _ = s.do(http.MethodPost, base+"/payment/final-toggle", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	var archived []appworkorder.WorkOrderResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/work-orders/archived?search=obra-200", nil, &archived)
	require.Len(t, archived, 1)
	assert.Equal(t, order.ID, archived[0].ID)

	code, _ = s.do(http.MethodGet, base+"/archive-record", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWorkOrderPaymentValidation(t *testing.T) {
	s := newTestServer(t)
	order := s.quotedOrder("OBRA-201", "500")
	base := "/api/v1/work-orders/" + order.ID.String() + "/payment"

	code, env := s.do(http.MethodPut, base+"/discount", gin.H{"percent": 120})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeInvalidPercentage, env.Error.Code)

	code, env = s.do(http.MethodPut, base+"/deposit", gin.H{"amount": -1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

	var payment appworkorder.PaymentResponse
	s.mustDo(http.StatusOK, http.MethodPut, base+"/total", gin.H{"amount": "650.50"}, &payment)
	assert.Equal(t, "650.5", payment.BaseTotal.String())
	s.mustDo(http.StatusOK, http.MethodGet, base, nil, &payment)
	assert.Equal(t, "650.5", payment.Balance.String())
}

func TestRequestRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/v1/requests", gin.H{"phone": "123"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/requests", `{"client_name":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)

	var req appworkorder.RequestResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/requests", gin.H{"client_name": "Pedro"}, &req)
	assert.Equal(t, "PENDING", req.Status)
	s.mustDo(http.StatusOK, http.MethodPost, "/api/v1/requests/"+req.ID.String()+"/review", nil, &req)
	assert.Equal(t, "IN_REVIEW", req.Status)
	s.mustDo(http.StatusOK, http.MethodPost, "/api/v1/requests/"+req.ID.String()+"/cancel", nil, &req)
	assert.Equal(t, "CANCELLED", req.Status)

	code, env = s.do(http.MethodPost, "/api/v1/requests/"+req.ID.String()+"/quote", gin.H{"client_code": "OBRA-9", "total": 10})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeInvalidTransition, env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/requests/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)

	code, _ = s.do(http.MethodGet, "/api/v1/requests/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/requests", nil)
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Count)
}

func TestTenantIsolation(t *testing.T) {
	s := newTestServer(t)
	order := s.quotedOrder("OBRA-300", "100")

	other := uuid.NewString()
	code, env := s.do(http.MethodGet, "/api/v1/work-orders/"+order.ID.String(), nil, middleware.TenantHeader, other)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/work-orders", nil, middleware.TenantHeader, "acme")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeInvalidTenant, env.Error.Code)

	var orders []appworkorder.WorkOrderResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/work-orders?status=QUOTED", nil, &orders)
	assert.Len(t, orders, 1)
}

func TestDocumentRoutes(t *testing.T) {
	s := newTestServer(t)
	order := s.quotedOrder("OBRA-400", "800")
	base := "/api/v1/work-orders/" + order.ID.String() + "/documents"

	var slot appworkorder.UploadDocumentResponse
	s.mustDo(http.StatusCreated, http.MethodPost, base+"/upload", gin.H{
		"kind": "QUOTE", "file_name": "presupuesto.pdf", "content_type": "application/pdf",
	}, &slot)
	assert.Contains(t, slot.Reference, order.ID.String())
	assert.Contains(t, slot.UploadURL, "http://files.local")

	s.mustDo(http.StatusOK, http.MethodPost, base, gin.H{
		"kind": "QUOTE", "reference": slot.Reference, "name": "presupuesto.pdf",
	}, &order)
	require.NotNil(t, order.QuoteDocument)

	var link appworkorder.DownloadDocumentResponse
	s.mustDo(http.StatusOK, http.MethodGet, base+"/quote", nil, &link)
	assert.Equal(t, "presupuesto.pdf", link.Document.Name)

	code, _ := s.do(http.MethodGet, base+"/invoice", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(http.MethodGet, base+"/materials", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)

	code, env = s.do(http.MethodPost, base, gin.H{"kind": "QUOTE", "reference": "elsewhere/file.pdf", "name": "x.pdf"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeInvalidInput, env.Error.Code)
}

func TestFinanceRoutes(t *testing.T) {
	s := newTestServer(t)
	order := s.quotedOrder("OBRA-500", "1000")
	s.mustDo(http.StatusOK, http.MethodPut, "/api/v1/work-orders/"+order.ID.String()+"/payment/deposit", gin.H{"amount": 400}, nil)

	var obligation appfinance.SupplierObligationResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/finance/suppliers", gin.H{
		"supplier_name": "Aluminios del Sur", "concept": "Perfiles", "total_amount": 200, "paid_amount": 50,
	}, &obligation)
	assert.Equal(t, "150", obligation.Outstanding.String())
	assert.False(t, obligation.IsPaid)

	s.mustDo(http.StatusOK, http.MethodPost, "/api/v1/finance/suppliers/"+obligation.ID.String()+"/payments", gin.H{"paid_amount": 500}, &obligation)
	assert.Equal(t, "200", obligation.PaidAmount.String())
	assert.True(t, obligation.IsPaid)

	var other appfinance.SupplierObligationResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/finance/suppliers", gin.H{"supplier_name": "Vidriería", "total_amount": 90}, &other)
	s.mustDo(http.StatusOK, http.MethodPost, "/api/v1/finance/suppliers/"+other.ID.String()+"/settle", nil, &other)
	assert.True(t, other.IsPaid)
	s.mustDo(http.StatusNoContent, http.MethodDelete, "/api/v1/finance/suppliers/"+other.ID.String(), nil, nil)

	var entry appfinance.LedgerEntryResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/finance/ledger", gin.H{
		"date": "2026-10-01T00:00:00Z", "description": "Venta de retazos", "amount": 100, "direction": "INCOME",
	}, &entry)
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/finance/ledger", gin.H{
		"date": "2026-10-02T00:00:00Z", "description": "Combustible", "amount": 30, "direction": "EXPENSE",
	}, nil)

	var summary struct {
		ProjectIncome   string `json:"project_income"`
		SupplierExpense string `json:"supplier_expense"`
		NetBalance      string `json:"net_balance"`
	}
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/finance/summary", nil, &summary)
	assert.Equal(t, "400", summary.ProjectIncome)
	assert.Equal(t, "200", summary.SupplierExpense)
	assert.Equal(t, "270", summary.NetBalance)

	var feed appfinance.FeedResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/finance/feed?search=retazos", nil, &feed)
	require.Len(t, feed.Rows, 3)
	assert.True(t, feed.Rows[0].Aggregate)
	assert.True(t, feed.Rows[1].Aggregate)
	assert.Equal(t, "Venta de retazos", feed.Rows[2].Description)

	s.mustDo(http.StatusNoContent, http.MethodDelete, "/api/v1/finance/ledger/"+entry.ID.String(), nil, nil)
	code, _ := s.do(http.MethodDelete, "/api/v1/finance/ledger/"+entry.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWorkforceRoutes(t *testing.T) {
	s := newTestServer(t)

	var employee appworkforce.EmployeeResponse
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/employees", gin.H{
		"name": "Luis Pérez", "dni": "30111222", "hourly_rate": "2500", "role": "Oficial",
	}, &employee)

	code, env := s.do(http.MethodPost, "/api/v1/employees", gin.H{"name": "Otro", "dni": "30111222", "hourly_rate": 10})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, dto.ErrCodeAlreadyExists, env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/attendance/actions", gin.H{"dni": "30111222", "action": "END"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeNoAttendanceRecord, env.Error.Code)

	var day appworkforce.AttendanceResponse
	s.mustDo(http.StatusOK, http.MethodPost, "/api/v1/attendance/actions", gin.H{"dni": "30111222", "action": "START"}, &day)
	assert.NotNil(t, day.Start)

	code, env = s.do(http.MethodPost, "/api/v1/attendance/actions", gin.H{"employee_id": employee.ID, "action": "START"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, dto.ErrCodeAlreadyStarted, env.Error.Code)

	var days []appworkforce.AttendanceResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/employees/"+employee.ID.String()+"/attendance", nil, &days)
	assert.Len(t, days, 1)

	var salary appworkforce.SalaryResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/employees/"+employee.ID.String()+"/salary", nil, &salary)
	assert.Equal(t, employee.ID, salary.EmployeeID)
	assert.True(t, salary.Salary.IsZero())
}

func TestOverviewAndHealth(t *testing.T) {
	s := newTestServer(t)
	s.quotedOrder("OBRA-600", "300")
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/requests", gin.H{"client_name": "Sin cotizar"}, nil)

	var dash appreport.DashboardResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/dashboard", nil, &dash)
	assert.EqualValues(t, 1, dash.OpenRequests)
	assert.EqualValues(t, 1, dash.QuotedOrders)
	assert.EqualValues(t, 2, dash.PendingQuotes)

	var quoted []appworkorder.WorkOrderResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/api/v1/dashboard/quoted?search=marta@example.com", nil, &quoted)
	assert.Len(t, quoted, 1)

	var health HealthResponse
	s.mustDo(http.StatusOK, http.MethodGet, "/health", nil, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "carpentry-backend", health.Name)
}
