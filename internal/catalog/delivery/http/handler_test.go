package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tair/catalog-mvc/internal/catalog/controller"
	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/internal/catalog/service"
	"github.com/tair/catalog-mvc/internal/catalog/testutil"
	"github.com/tair/catalog-mvc/internal/catalog/usecase"
	"github.com/tair/catalog-mvc/kafka"
	"github.com/tair/catalog-mvc/pkg/auth"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testServer struct {
	handler  http.Handler
	products *testutil.ProductRepository
	tokens   *auth.TokenManager
	metrics  *Metrics
	webRoot  string
}

func newTestServer(t *testing.T, health Pinger) *testServer {
	t.Helper()

	products := testutil.NewProductRepository(
		testutil.NewProduct(1, "Pencil", testutil.Stationery),
		testutil.NewProduct(2, "Headphones", testutil.Electronics),
	)
	categories := &testutil.CategoryRepository{
		Categories: []domain.Category{testutil.Stationery, testutil.Electronics},
	}

	m, err := usecase.NewMediatorForRepository(products)
	require.NoError(t, err)

	webRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(webRoot, "images"), 0o755))

	ctrl := controller.NewProductsController(
		service.NewProductService(m, kafka.NopPublisher{}),
		service.NewCategoryService(categories),
		controller.OSFileSystem{},
		controller.WebRoot(webRoot),
	)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	users, err := auth.ParseUsers("admin:" + hash(t, "admin-pass") + ":Admin,clerk:" + hash(t, "clerk-pass"))
	require.NoError(t, err)

	limiter := NewRateLimiter(nil, 10, time.Minute)
	if health == nil {
		health = fakePinger{}
	}

	handler := NewRouter(Routes{
		Products: NewProductHandler(ctrl, dto.NewValidator(), renderer, metrics, limiter),
		API:      NewAPIHandler(m, metrics),
		Account:  NewAccountHandler(users, tokens, renderer, limiter, false),
		Auth:     NewAuthenticator(tokens),
		Health:   health,
		WebRoot:  controller.WebRoot(webRoot),
	})

	return &testServer{handler: handler, products: products, tokens: tokens, metrics: metrics, webRoot: webRoot}
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	return s.do(t, httptest.NewRequest(http.MethodGet, target, http.NoBody))
}

func (s *testServer) bearer(t *testing.T, req *http.Request, role string) *http.Request {
	t.Helper()
	token, err := s.tokens.GenerateToken(1, "someone", role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validForm() url.Values {
	return url.Values{
		"name":        {"Notebook"},
		"description": {"Ninety-six pages"},
		"price":       {"19,90"},
		"stock":       {"40"},
		"image":       {"notebook.jpg"},
		"category_id": {"1"},
	}
}

func TestRoot_RedirectsToProducts(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))
}

func TestIndex_ListsProducts(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/products")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Pencil")
	assert.Contains(t, body, "Headphones")
	assert.Contains(t, body, "12.50")
	assert.NotContains(t, body, "/products/delete/1", "delete link is for administrators")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	assert.Equal(t, float64(1), promtestutil.ToFloat64(s.metrics.requestCounter.WithLabelValues("GET", "/products", "200")))
	assert.Equal(t, float64(2), promtestutil.ToFloat64(s.metrics.totalProducts))
}

func TestIndex_ShowsDeleteLinkToAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	req := s.bearer(t, httptest.NewRequest(http.MethodGet, "/products", http.NoBody), auth.RoleAdmin)
	rec := s.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/products/delete/1")
}

func TestDetails(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(s.webRoot, "images", "Pencil.jpg"), []byte("img"), 0o644))

	t.Run("image on disk", func(t *testing.T) {
		rec := s.get(t, "/products/details/1")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `src="/images/Pencil.jpg"`)
	})

	t.Run("image missing", func(t *testing.T) {
		rec := s.get(t, "/products/details/2")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Headphones")
		assert.Contains(t, rec.Body.String(), "Image not available")
	})

	t.Run("static image served", func(t *testing.T) {
		rec := s.get(t, "/images/Pencil.jpg")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "img", rec.Body.String())
	})
}

func TestMissingOrUnknownID_NotFound(t *testing.T) {
	s := newTestServer(t, nil)

	for _, target := range []string{
		"/products/details",
		"/products/details/abc",
		"/products/details/99",
		"/products/edit",
		"/products/edit/99",
		"/does-not-exist",
	} {
		t.Run(target, func(t *testing.T) {
			rec := s.get(t, target)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "Not found")
		})
	}
}

func TestEdit_PreselectsCategory(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/products/edit/2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="2" selected`)
	assert.NotContains(t, body, `value="1" selected`)
	assert.Contains(t, body, `value="Headphones"`)
}

func TestCreate_ShowsEmptyForm(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/products/create")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Material Escolar")
	assert.NotContains(t, rec.Body.String(), "selected>")
}

func TestCreatePost_Invalid_RedisplaysWithoutAdding(t *testing.T) {
	s := newTestServer(t, nil)
	form := validForm()
	form.Set("name", "ab")
	form.Set("stock", "many")

	rec := s.do(t, postForm("/products/create", form))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The name must have at least 3 characters")
	assert.Contains(t, body, "The stock must be a whole number")
	assert.Contains(t, body, `value="ab"`)
	assert.Contains(t, body, `value="1" selected`)
	assert.NotContains(t, s.products.Calls, "Create")
}

func TestCreatePost_Valid_AddsAndRedirects(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, postForm("/products/create", validForm()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))

	stored, ok := s.products.Stored(3)
	require.True(t, ok)
	assert.Equal(t, "Notebook", stored.Name)
	assert.Equal(t, "19.9", stored.Price.String())
	assert.Equal(t, uint(1), stored.CategoryID)
}

func TestEditPost(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("valid", func(t *testing.T) {
		form := validForm()
		form.Set("id", "1")
		form.Set("name", "Pencil HB")

		rec := s.do(t, postForm("/products/edit", form))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		stored, ok := s.products.Stored(1)
		require.True(t, ok)
		assert.Equal(t, "Pencil HB", stored.Name)
	})

	t.Run("unknown product", func(t *testing.T) {
		form := validForm()
		form.Set("id", "99")

		rec := s.do(t, postForm("/products/edit", form))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDelete_RequiresAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("anonymous goes to login", func(t *testing.T) {
		rec := s.get(t, "/products/delete/1")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/account/login?returnUrl=%2Fproducts%2Fdelete%2F1", rec.Header().Get("Location"))
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		req := s.bearer(t, httptest.NewRequest(http.MethodGet, "/products/delete/1", http.NoBody), "Clerk")
		rec := s.do(t, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req = s.bearer(t, httptest.NewRequest(http.MethodPost, "/products/delete/1", http.NoBody), "Clerk")
		rec = s.do(t, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		_, ok := s.products.Stored(1)
		assert.True(t, ok)
	})

	t.Run("admin confirms", func(t *testing.T) {
		req := s.bearer(t, httptest.NewRequest(http.MethodGet, "/products/delete/1", http.NoBody), auth.RoleAdmin)
		rec := s.do(t, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Are you sure")
	})

	t.Run("admin without id", func(t *testing.T) {
		req := s.bearer(t, httptest.NewRequest(http.MethodGet, "/products/delete", http.NoBody), auth.RoleAdmin)
		assert.Equal(t, http.StatusNotFound, s.do(t, req).Code)
	})
}

func TestDeleteConfirmed(t *testing.T) {
	s := newTestServer(t, nil)

	req := s.bearer(t, httptest.NewRequest(http.MethodPost, "/products/delete/1", http.NoBody), auth.RoleAdmin)
	rec := s.do(t, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, ok := s.products.Stored(1)
	assert.False(t, ok)

	req = s.bearer(t, httptest.NewRequest(http.MethodPost, "/products/delete/1", http.NoBody), auth.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, s.do(t, req).Code)
}

func TestRepositoryFailure_RendersErrorPage(t *testing.T) {
	s := newTestServer(t, nil)
	s.products.Err = errors.New("connection refused")

	rec := s.get(t, "/products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAPI(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("list", func(t *testing.T) {
		rec := s.get(t, "/api/products")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Contains(t, rec.Body.String(), `"name":"Pencil"`)
		assert.Contains(t, rec.Body.String(), `"name":"Headphones"`)
	})

	t.Run("get", func(t *testing.T) {
		rec := s.get(t, "/api/products/2")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"category_id":2`)
	})

	t.Run("absent", func(t *testing.T) {
		rec := s.get(t, "/api/products/5")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Product not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.get(t, "/api/products/x").Code)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("page", func(t *testing.T) {
		rec := s.get(t, "/account/login?returnUrl=%2Fproducts%2Fdelete%2F2")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="/products/delete/2"`)
	})

	t.Run("success sets cookie", func(t *testing.T) {
		rec := s.do(t, postForm("/account/login", url.Values{
			"username":  {"admin"},
			"password":  {"admin-pass"},
			"returnUrl": {"/products/delete/2"},
		}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/products/delete/2", rec.Header().Get("Location"))

		var session *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == TokenCookie {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.True(t, session.HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/products/delete/2", http.NoBody)
		req.AddCookie(session)
		assert.Equal(t, http.StatusOK, s.do(t, req).Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, postForm("/account/login", url.Values{
			"username": {"clerk"},
			"password": {"admin-pass"},
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password.")
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		rec := s.do(t, httptest.NewRequest(http.MethodPost, "/account/logout", http.NoBody))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, TokenCookie, cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestSafeReturnURL(t *testing.T) {
	assert.Equal(t, "/products/edit/1", safeReturnURL("/products/edit/1"))
	assert.Equal(t, "/products", safeReturnURL(""))
	assert.Equal(t, "/products", safeReturnURL("https://evil.example"))
	assert.Equal(t, "/products", safeReturnURL("//evil.example"))
}

func TestHealth(t *testing.T) {
	rec := newTestServer(t, nil).get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = newTestServer(t, fakePinger{err: errors.New("down")}).get(t, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Database unavailable")
}

func TestRateLimiter_DisabledWithoutRedis(t *testing.T) {
	var nilLimiter *RateLimiter
	assert.False(t, nilLimiter.Enabled())
	assert.False(t, NewRateLimiter(nil, 10, time.Minute).Enabled())

	called := false
	h := NewRateLimiter(nil, 1, time.Minute).Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/products/create", http.NoBody))
	assert.True(t, called)
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42").Get()
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	assert.False(t, parseID("").IsPresent())
	assert.False(t, parseID("-1").IsPresent())
	assert.False(t, parseID("4x").IsPresent())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.RemoteAddr = "10.0.0.7:5555"
	assert.Equal(t, "10.0.0.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}
