package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"learner": LearnerID(c)})
	})
	return r
}

func get(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r := newRouter(rl.Middleware())

	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, nil).Code)

	w := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("10.0.0.2")
	require.Equal(t, 2, rl.Len())

	assert.Equal(t, 1, rl.Cleanup(time.Minute))
	assert.Equal(t, 1, rl.Len())
}

func TestLearner(t *testing.T) {
	r := newRouter(Learner())

	t.Run("generated when absent", func(t *testing.T) {
		w := get(r, nil)
		require.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get(LearnerHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("echoed when valid", func(t *testing.T) {
		id := uuid.NewString()
		w := get(r, http.Header{LearnerHeader: {id}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, w.Header().Get(LearnerHeader))
	})

	t.Run("canonicalized", func(t *testing.T) {
		id := uuid.New()
		w := get(r, http.Header{LearnerHeader: {"{" + id.String() + "}"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id.String(), w.Header().Get(LearnerHeader))
	})

	t.Run("rejected when malformed", func(t *testing.T) {
		w := get(r, http.Header{LearnerHeader: {"not-a-uuid"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_ID")
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "https://a.example", "*"},
		{"listed", []string{"https://a.example"}, "https://a.example", "https://a.example"},
		{"unlisted", []string{"https://a.example"}, "https://b.example", ""},
		{"no origin", []string{"*"}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(CORS(tt.allowed))
			w := get(r, http.Header{"Origin": {tt.origin}})
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("preflight", func(t *testing.T) {
		r := newRouter(CORS([]string{"*"}))
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://a.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), LearnerHeader)
	})
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	for _, path := range []string{"/ok", "/boom"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if path == "/boom" {
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
		}
	}

	assert.Equal(t, 1, logs.FilterMessage("handler panic").Len())
	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, zapcore.InfoLevel, requests[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, requests[1].Level)
	assert.EqualValues(t, http.StatusInternalServerError, requests[1].ContextMap()["status"])
}
