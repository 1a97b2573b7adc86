package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/db"
	"github.com/jfuenzalida/restaurante-backend/internal/middleware/auth"
	"github.com/jfuenzalida/restaurante-backend/internal/models"
	"github.com/jfuenzalida/restaurante-backend/internal/repo"
	"github.com/jfuenzalida/restaurante-backend/internal/service"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

var testSecret = []byte("router-test-secret")

type testServer struct {
	Echo *echo.Echo
	DB   *gorm.DB
	Repo *repo.GormRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	r := repo.NewGormRepo(gdb)
	authSvc := &service.AuthService{Repo: r, JWTSecret: testSecret, RefreshSecret: []byte("refresh")}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		ReportHandler:  &ReportHTTP{Svc: &service.ReportService{Repo: r}},
		SearchHandler:  &SearchHTTP{},
		AuthMW:         &auth.Middleware{JWTSecret: testSecret},
	})

	return &testServer{Echo: e, DB: gdb, Repo: r}
}

func (s *testServer) createUser(t *testing.T, username, role string) (*models.User, *http.Cookie) {
	t.Helper()

	u := &models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, s.Repo.CreateUser(context.Background(), u))

	token, _, err := service.SignAccessToken(u.ID, role, testSecret)
	require.NoError(t, err)
	return u, &http.Cookie{Name: "accessToken", Value: token}
}

func (s *testServer) createProduct(t *testing.T, name string, price int64) *models.Product {
	t.Helper()

	p := &models.Product{Name: name, Price: price, Available: true}
	require.NoError(t, s.Repo.CreateProduct(context.Background(), p))
	return p
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/ready", nil).Code)
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", transport.RegisterRequest{
		Username: "ana",
		Password: "secreto123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", transport.LoginRequest{
		Username: "ana",
		Password: "secreto123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var access *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "accessToken" {
			access = c
		}
	}
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)

	rec = s.do(t, http.MethodGet, "/api/auth/me", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeJSON[models.User](t, rec)
	assert.Equal(t, "ana", me.Username)
}

func TestLoginBadPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", transport.RegisterRequest{
		Username: "ana",
		Password: "secreto123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", transport.LoginRequest{
		Username: "ana",
		Password: "equivocada",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartEndpointsRequireLogin(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/carrito", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/pedidos", nil).Code)

	bad := &http.Cookie{Name: "accessToken", Value: "not-a-token"}
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/carrito", nil, bad).Code)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	user, cookie := s.createUser(t, "ana", service.RoleCustomer)
	pizza := s.createProduct(t, "Pizza", 1000)
	soda := s.createProduct(t, "Bebida", 500)

	rec := s.do(t, http.MethodPost, "/api/carrito/items", transport.AddItemRequest{ProductID: pizza.ID, Quantity: 2}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/carrito/items", transport.AddItemRequest{ProductID: soda.ID, Quantity: 1}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeJSON[transport.CartView](t, rec)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, int64(2500), view.Total)

	rec = s.do(t, http.MethodPost, "/api/pedidos", transport.CheckoutRequest{
		PaymentMethod:   models.PaymentCard,
		DeliveryAddress: "Av. Siempre Viva 742",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	order := decodeJSON[models.Order](t, rec)
	assert.Equal(t, int64(2500), order.Total)
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Equal(t, user.ID, order.UserID)

	rec = s.do(t, http.MethodGet, "/api/carrito", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeJSON[transport.CartView](t, rec)
	assert.Empty(t, view.Items)

	rec = s.do(t, http.MethodGet, "/api/pedidos", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decodeJSON[[]models.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckoutEmptyCartReturns400(t *testing.T) {
	s := newTestServer(t)
	_, cookie := s.createUser(t, "ana", service.RoleCustomer)

	rec := s.do(t, http.MethodPost, "/api/pedidos", transport.CheckoutRequest{
		PaymentMethod:   models.PaymentCash,
		DeliveryAddress: "Calle 1",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaffEndpointsRejectCustomers(t *testing.T) {
	s := newTestServer(t)
	_, customer := s.createUser(t, "ana", service.RoleCustomer)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/pedidos/active"},
		{http.MethodGet, "/api/pedidos/dispatch"},
		{http.MethodPatch, "/api/pedidos/1/status"},
		{http.MethodGet, "/api/reportes/stats"},
		{http.MethodPost, "/api/productos"},
	}
	for _, p := range paths {
		rec := s.do(t, p.method, p.path, nil, customer)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestStatusUpdateByStaff(t *testing.T) {
	s := newTestServer(t)
	_, customer := s.createUser(t, "ana", service.RoleCustomer)
	_, cashier := s.createUser(t, "carlos", service.RoleCashier)
	pizza := s.createProduct(t, "Pizza", 1000)

	rec := s.do(t, http.MethodPost, "/api/carrito/items", transport.AddItemRequest{ProductID: pizza.ID, Quantity: 1}, customer)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/pedidos", transport.CheckoutRequest{
		PaymentMethod:   models.PaymentTransfer,
		DeliveryAddress: "Calle 1",
	}, customer)
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decodeJSON[models.Order](t, rec)
	require.Equal(t, models.StatusPending, order.Status)

	rec = s.do(t, http.MethodGet, "/api/pedidos/active", nil, cashier)
	require.Equal(t, http.StatusOK, rec.Code)
	active := decodeJSON[[]models.Order](t, rec)
	require.Len(t, active, 1)

	rec = s.do(t, http.MethodPatch, "/api/pedidos/1/status", transport.SetStatusRequest{Status: models.StatusPreparing}, cashier)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeJSON[models.Order](t, rec)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	rec = s.do(t, http.MethodPatch, "/api/pedidos/1/status", transport.SetStatusRequest{Status: "LISTO"}, cashier)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/pedidos/999/status", transport.SetStatusRequest{Status: models.StatusDelivered}, cashier)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogCRUDByAdmin(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.createUser(t, "root", service.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/productos", transport.CreateProductRequest{
		Name:  "Lasagna",
		Price: 1500,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[models.Product](t, rec)
	assert.True(t, created.Available)

	// catalog reads are public
	rec = s.do(t, http.MethodGet, "/api/productos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeJSON[[]models.Product](t, rec)
	require.Len(t, products, 1)

	off := false
	rec = s.do(t, http.MethodPatch, "/api/productos/1/toggle_availability", transport.SetAvailabilityRequest{Available: &off}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decodeJSON[models.Product](t, rec)
	assert.False(t, toggled.Available)

	rec = s.do(t, http.MethodDelete, "/api/productos/1", nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/productos/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.createUser(t, "root", service.RoleAdmin)

	rec := s.do(t, http.MethodGet, "/api/reportes/stats", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeJSON[transport.SalesStats](t, rec)
	assert.Zero(t, stats.OrderCount)

	rec = s.do(t, http.MethodGet, "/api/reportes/stats?start_date=2026-08-01&end_date=2026-08-31", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/reportes/stats?start_date=agosto", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchUnconfigured(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/search?q=pizza", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
