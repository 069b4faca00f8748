package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appuser "github.com/muhammadheryan/food-delivery/application/user"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	redismocks "github.com/muhammadheryan/food-delivery/mocks/repository/redis"
	marketplacemocks "github.com/muhammadheryan/food-delivery/mocks/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/transport"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type body struct {
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Redirect string                 `json:"redirect"`
	Data     map[string]interface{} `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	return b
}

func newHandler(t *testing.T, cache *redismocks.Repository) http.Handler {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "s", JWTExpiration: time.Hour, SessionExpTime: time.Hour}}
	rh := &transport.RestHandler{
		UserApp: appuser.NewUserApp(cfg, marketplacemocks.NewAuthAPI(t), cache),
		Cache:   cache,
	}
	return transport.NewTransport("internal-key", rh)
}

func TestTransport_MissingTokenRedirectsToLogin(t *testing.T) {
	h := newHandler(t, redismocks.NewRepository(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	b := decode(t, rec)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrUnauthorize], b.Code)
	assert.Equal(t, "/login", b.Redirect)
}

func TestTransport_InternalEvents(t *testing.T) {
	event := `{"type":"order.status","user_id":"u1","resources":["orders","customerNotifications"]}`

	t.Run("wrong key", func(t *testing.T) {
		h := newHandler(t, redismocks.NewRepository(t))
		req := httptest.NewRequest(http.MethodPost, "/internal/events", strings.NewReader(event))
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("drops the named cache entries", func(t *testing.T) {
		cache := redismocks.NewRepository(t)
		cache.On("Invalidate", mock.Anything, "qc:u1:orders", "qc:u1:customerNotifications").Return(nil).Once()
		h := newHandler(t, cache)

		req := httptest.NewRequest(http.MethodPost, "/internal/events", strings.NewReader(event))
		req.Header.Set("Authorization", "Bearer internal-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decode(t, rec).Data["event_id"])
	})

	t.Run("event without resources", func(t *testing.T) {
		h := newHandler(t, redismocks.NewRepository(t))
		req := httptest.NewRequest(http.MethodPost, "/internal/events", strings.NewReader(`{"type":"order.status"}`))
		req.Header.Set("Authorization", "Bearer internal-key")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := transport.RoleMiddleware(constant.RoleAdmin)(ok)

	tests := []struct {
		name    string
		session *model.Session
		want    int
	}{
		{"no session", nil, http.StatusUnauthorized},
		{"customer", &model.Session{ID: "s1", UserID: "u1", Role: constant.RoleCustomer}, http.StatusForbidden},
		{"admin", &model.Session{ID: "s2", UserID: "a1", Role: constant.RoleAdmin}, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.session != nil {
				ctx = utilsContext.WithSession(ctx, tt.session)
			}
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil).WithContext(ctx)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestTransport_Health(t *testing.T) {
	h := newHandler(t, redismocks.NewRepository(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
