package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"academia/internal/domain/plan"
	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/clock"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func flowDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	require.NoError(t, db.AutoMigrate(
		&student.Student{},
		&plan.Plan{},
		&subscription.Subscription{},
		&Payment{},
	))
	return db
}

func flowRouter(t *testing.T, db *gorm.DB, clk clock.Clock) *gin.Engine {
	studentRepo := student.NewRepository(db)
	studentService := student.NewService(studentRepo, clk)
	studentHandler := student.NewHandler(studentService)

	planRepo := plan.NewRepository(db)
	planService := plan.NewService(planRepo, clk)
	planHandler := plan.NewHandler(planService)

	subRepo := subscription.NewRepository(db)
	subService := subscription.NewService(subRepo, planService, studentService, clk)
	subHandler := subscription.NewHandler(subService, clk)

	payRepo := NewRepository(db)
	payService := NewService(payRepo, studentService, subService, nil, clk, nil)
	payHandler := NewHandler(payService, clk)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")
	studentHandler.RegisterRoutes(v1)
	planHandler.RegisterRoutes(v1)
	subHandler.RegisterRoutes(v1)
	payHandler.RegisterRoutes(v1)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, "body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// Walks the whole front-desk flow over HTTP: enroll, create a plan, open a
// subscription, bill it and confirm the payment. Confirmation must leave the
// subscription active.
func TestMembershipFlow_EnrollToActiveSubscription(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now)
	db := flowDB(t)
	r := flowRouter(t, db, clk)

	w := doJSON(t, r, http.MethodPost, "/api/v1/students", gin.H{
		"name":  "Maria Silva",
		"email": "maria@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var st student.Student
	decodeData(t, w, &st)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/plans", gin.H{
		"name":             "Mensal",
		"price":            100.0,
		"duration_days":    30,
		"discount_percent": 20.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p plan.Plan
	decodeData(t, w, &p)

	w = doJSON(t, r, http.MethodPost, "/api/v1/subscriptions", gin.H{
		"student_id": st.ID,
		"plan_id":    p.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub subscription.Response
	decodeData(t, w, &sub)
	assert.Equal(t, subscription.StatusPending, sub.Status)
	assert.Equal(t, 80.0, sub.FinalPrice)
	assert.Equal(t, 30, sub.DaysRemaining)

	w = doJSON(t, r, http.MethodPost, "/api/v1/payments", gin.H{
		"student_id":      st.ID,
		"subscription_id": sub.ID,
		"amount":          80.0,
		"payment_method":  "pix",
		"due_date":        now.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pay Payment
	decodeData(t, w, &pay)
	assert.Equal(t, StatusPending, pay.Status)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/payments/%d/confirm", pay.ID), gin.H{
		"confirmed_by": "recepcao",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var confirmed Payment
	decodeData(t, w, &confirmed)
	assert.Equal(t, StatusPaid, confirmed.Status)
	require.NotNil(t, confirmed.PaidAt)
	assert.NotEmpty(t, confirmed.TransactionID)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/subscriptions/%d", sub.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var after subscription.Response
	decodeData(t, w, &after)
	assert.Equal(t, subscription.StatusActive, after.Status)
}

// A payment against a lapsed pending subscription must be rejected as a whole:
// no paid status, no activation.
func TestMembershipFlow_ConfirmAfterPeriodLapsedFails(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now)
	db := flowDB(t)
	r := flowRouter(t, db, clk)

	w := doJSON(t, r, http.MethodPost, "/api/v1/students", gin.H{
		"name":  "João Souza",
		"email": "joao@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var st student.Student
	decodeData(t, w, &st)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/plans", gin.H{
		"name":          "Semanal",
		"price":         40.0,
		"duration_days": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p plan.Plan
	decodeData(t, w, &p)

	w = doJSON(t, r, http.MethodPost, "/api/v1/subscriptions", gin.H{
		"student_id": st.ID,
		"plan_id":    p.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub subscription.Response
	decodeData(t, w, &sub)

	w = doJSON(t, r, http.MethodPost, "/api/v1/payments", gin.H{
		"student_id":      st.ID,
		"subscription_id": sub.ID,
		"amount":          40.0,
		"payment_method":  "boleto",
		"due_date":        now.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pay Payment
	decodeData(t, w, &pay)

	// member only shows up after the period is over
	clk.Advance(10 * 24 * time.Hour)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/payments/%d/confirm", pay.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/payments/%d", pay.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored Payment
	decodeData(t, w, &stored)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Nil(t, stored.PaidAt)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/subscriptions/%d", sub.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var after subscription.Response
	decodeData(t, w, &after)
	assert.Equal(t, subscription.StatusPending, after.Status)
}
