package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tintaeletras/bookshop/internal/handlers"
	"github.com/tintaeletras/bookshop/internal/models"
	"github.com/tintaeletras/bookshop/internal/orders"
	httpserver "github.com/tintaeletras/bookshop/internal/transport/http"
)

// testEnv runs the full router against an in-memory database. The event
// producer is left nil; publishing is best effort and skipped when absent.
type testEnv struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		BlogHandler:      &handlers.BlogHandler{DB: db},
		CommentHandler:   &handlers.CommentHandler{DB: db},
		BookHandler:      &handlers.BookHandler{DB: db},
		OrderHandler:     &handlers.OrderHandler{Orders: orders.NewService(db)},
		MarketingHandler: &handlers.MarketingHandler{DB: db},
	})

	return &testEnv{t: t, e: e, db: db}
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(env.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (env *testEnv) seedBook(title, price string, stock int, available bool) models.Book {
	env.t.Helper()
	book := models.Book{
		Title:         title,
		Author:        "test author",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Available:     available,
	}
	require.NoError(env.t, env.db.Create(&book).Error)
	return book
}

func (env *testEnv) seedCategory(name, slug string) models.BlogCategory {
	env.t.Helper()
	cat := models.BlogCategory{Name: name, Slug: slug}
	require.NoError(env.t, env.db.Create(&cat).Error)
	return cat
}

func (env *testEnv) seedPost(title, slug string, categoryID uint, published bool) models.BlogPost {
	env.t.Helper()
	post := models.BlogPost{
		Title:      title,
		Slug:       slug,
		Content:    "body of " + title,
		CategoryID: categoryID,
		Published:  published,
	}
	require.NoError(env.t, env.db.Create(&post).Error)
	return post
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
