package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/db"
	"github.com/jfuenzalida/restaurante-backend/internal/models"
	"github.com/jfuenzalida/restaurante-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory DB
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

type testEnv struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Cart    *CartService
	Order   *OrderService
	Catalog *CatalogService
	Report  *ReportService
	Auth    *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := newTestDB(t)
	r := repo.NewGormRepo(gdb)
	return &testEnv{
		DB:      gdb,
		Repo:    r,
		Cart:    &CartService{Repo: r},
		Order:   &OrderService{Repo: r},
		Catalog: &CatalogService{Repo: r},
		Report:  &ReportService{Repo: r},
		Auth: &AuthService{
			Repo:          r,
			JWTSecret:     []byte("test-jwt-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
		},
	}
}

func (env *testEnv) createProduct(t *testing.T, name string, price int64, available bool) *models.Product {
	t.Helper()

	p := &models.Product{Name: name, Price: price, Available: available}
	require.NoError(t, env.Repo.CreateProduct(context.Background(), p))
	return p
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	u := &models.User{Username: username, PasswordHash: "x", Role: RoleCustomer}
	require.NoError(t, env.Repo.CreateUser(context.Background(), u))
	return u
}
