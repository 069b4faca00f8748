package marketplace_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *marketplace.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return marketplace.NewClient(config.MarketplaceConfig{
		BaseURL:      srv.URL + "/",
		Timeout:      2 * time.Second,
		ReadAttempts: 3,
		ReadBackoff:  time.Millisecond,
	}, marketplace.WithHTTPClient(srv.Client()))
}

func tokenCtx() context.Context {
	return utilsContext.WithSession(context.Background(), &model.Session{ID: "s1", UserID: "u1", Token: "tok-1"})
}

func TestClient_SendsBearerToken(t *testing.T) {
	var auth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/restaurant/viewall", r.URL.Path)
		_, _ = w.Write([]byte(`{"restaurants":[{"_id":"r1","name":"Tasty"}]}`))
	})

	got, err := c.ListRestaurants(tokenCtx())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "Bearer tok-1", auth)
}

func TestClient_RetriesReadsOnServerError(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"restaurants":[]}`))
	})

	_, err := c.ListRestaurants(tokenCtx())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Menu item not found"}`))
	})

	_, err := c.GetMenuItem(tokenCtx(), "m1")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, http.StatusNotFound, marketplace.StatusCode(err))

	mapped := marketplace.MapError(err, map[int]constant.ErrorType{http.StatusNotFound: constant.ErrInvalidItem})
	var ce cerr.CustomError
	require.ErrorAs(t, mapped, &ce)
	assert.Equal(t, constant.ErrInvalidItem, ce.Type())
	assert.Equal(t, "Menu item not found", ce.Error())
}

func TestClient_UnauthorizedRunsHook(t *testing.T) {
	var called atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"jwt expired"}`))
	})
	c.OnUnauthorized(func(ctx context.Context) { called.Add(1) })

	_, err := c.ListRestaurants(tokenCtx())
	require.Error(t, err)
	assert.Equal(t, int32(1), called.Load())

	mapped := marketplace.MapError(err, nil)
	assert.True(t, cerr.Is(mapped, constant.ErrUnauthorize))
}

func TestMapError_Defaults(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want constant.ErrorType
	}{
		{"bad request", &marketplace.APIError{StatusCode: http.StatusBadRequest}, constant.ErrInvalidRequest},
		{"forbidden", &marketplace.APIError{StatusCode: http.StatusForbidden}, constant.ErrForbidden},
		{"server error", &marketplace.APIError{StatusCode: http.StatusBadGateway}, constant.ErrUpstream},
		{"deadline", context.DeadlineExceeded, constant.ErrUpstream},
		{"custom error passes through", cerr.SetCustomError(constant.ErrEmptyCart), constant.ErrEmptyCart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, cerr.Is(marketplace.MapError(tt.err, nil), tt.want))
		})
	}
	assert.NoError(t, marketplace.MapError(nil, nil))
}
