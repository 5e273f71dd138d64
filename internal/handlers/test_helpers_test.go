package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	sessions *session.Manager
	cache    *cache.Memory
	audit    *memoryAudit
	mail     *memoryMail
}

type memoryAudit struct{ events []audit.Event }

func (a *memoryAudit) Dispatch(ev audit.Event) { a.events = append(a.events, ev) }

func (a *memoryAudit) actions() []string {
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type memoryMail struct{ messages []notify.Message }

func (m *memoryMail) Enqueue(msg notify.Message) bool {
	m.messages = append(m.messages, msg)
	return true
}

// Wednesday 2023-06-14, morning in the shop's zone.
var testNow = time.Date(2023, 6, 14, 9, 0, 0, 0, time.UTC)

func freshDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

// setupRouter mirrors the production route table.
func setupRouter(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:       freshDB(t),
		sessions: session.NewManager("test-secret", time.Hour),
		cache:    cache.NewMemory(),
		audit:    &memoryAudit{},
		mail:     &memoryMail{},
	}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(env.db)
	shopRepo := infraRepo.NewShopGormRepository(env.db)

	createUC := ucAppointment.NewCreateBooking(appointmentRepo, env.audit, env.mail, nil,
		ucAppointment.BookingOptions{PhoneRegion: "US", ShopName: "Chop Clock"})
	listUC := ucAppointment.NewListAppointments(appointmentRepo, func() time.Time { return testNow })

	authH := NewAuthHandler(env.db, env.sessions, env.audit, false)
	meH := NewMeHandler(env.db)
	shopH := NewShopHandler(shopRepo, appointmentRepo, env.cache, time.Minute, env.audit)
	serviceH := NewServiceHandler(shopRepo, appointmentRepo, env.cache, env.audit)
	appointmentH := NewAppointmentHandler(createUC, listUC, env.cache)
	auditH := NewAuditLogsHandler(env.db)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/shop", shopH.Get)
	api.GET("/services", serviceH.List)
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(env.sessions))
	secured.GET("/me", meH.GetMe)
	secured.GET("/me/appointments", appointmentH.Mine)
	secured.POST("/appointments", appointmentH.Create)

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(env.sessions), middleware.AdminMiddleware())
	admin.POST("/shop", shopH.Replace)
	admin.POST("/services", serviceH.Create)
	admin.PUT("/services/:id", serviceH.Update)
	admin.DELETE("/services/:id", serviceH.Delete)
	admin.GET("/appointments", appointmentH.List)
	admin.GET("/appointments/grouped", appointmentH.Grouped)
	admin.GET("/appointments/stats", appointmentH.Stats)
	admin.GET("/users", meH.ListUsers)
	admin.GET("/admin/audit-logs", auditH.List)

	env.router = r
	return env
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authRequest(method, path string, body any, token string) *http.Request {
	req := jsonRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func parseList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seedTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{Username: "user-" + email, Email: email, Password: string(hashed), Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func (env *testEnv) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := env.sessions.Issue(u)
	require.NoError(t, err)
	return token
}

func (env *testEnv) adminToken(t *testing.T) string {
	return env.tokenFor(t, seedTestUser(t, env.db, "boss@shop.test", models.RoleAdmin))
}

func (env *testEnv) userToken(t *testing.T) (*models.User, string) {
	u := seedTestUser(t, env.db, "ann@mail.test", models.RoleUser)
	return u, env.tokenFor(t, u)
}

// seedShop stores a shop with the given services and returns the created rows.
func seedShop(t *testing.T, db *gorm.DB, name string, services ...models.Service) *models.Shop {
	t.Helper()
	shop := &models.Shop{Name: name, Location: "123 Barber St", Services: services}
	require.NoError(t, infraRepo.NewShopGormRepository(db).ReplaceShop(t.Context(), shop))
	return shop
}

func svc(name, price string, minutes int) models.Service {
	return models.Service{Name: name, Price: decimal.RequireFromString(price), Duration: minutes}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
