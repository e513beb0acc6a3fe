package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resto/config"
	"resto/infras/otel/mocks"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	"resto/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		count         int64
		err           error
		wantCode      int
		wantRemaining string
	}{
		{name: "disabled", wantCode: http.StatusOK},
		{name: "within limit", enabled: true, count: 2, wantCode: http.StatusOK, wantRemaining: "1"},
		{name: "at limit", enabled: true, count: 3, wantCode: http.StatusOK, wantRemaining: "0"},
		{name: "over limit", enabled: true, count: 4, wantCode: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "cache unavailable", enabled: true, err: errors.New("redis down"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			if tt.enabled {
				redisCache.EXPECT().Incr(gomock.Any(), "limiter:10.0.0.7:probe", 60).Return(tt.count, tt.err)
			}

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/menu", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.7, 172.16.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "probe")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestTracingKeepsStatus(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)

	handler := app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
