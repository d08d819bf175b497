package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Z4rru/hangulmastery/internal/api/middleware"
	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/progress"
	"github.com/Z4rru/hangulmastery/internal/quiz"
	"github.com/Z4rru/hangulmastery/internal/sampling"
	"github.com/Z4rru/hangulmastery/internal/testutil"
)

type testEnv struct {
	router   *gin.Engine
	db       *database.DB
	repo     *database.Repository
	cat      *content.Catalog
	store    *progress.Store
	registry *quiz.Registry
	rnd      sampling.Rand
	learner  string
}

// setupEnv wires handlers over a seeded in-memory database. The router has
// the learner middleware installed; tests register the routes they need.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, repo, cat := testutil.SetupSeededDB(t)

	clock := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	store := progress.NewStore(
		database.NewCachedKVStore(database.NewKVStore(db)),
		cat.SectionKeys(),
		progress.WithClock(func() time.Time { return clock }),
	)
	rnd := sampling.NewRand(11)

	router := testutil.SetupTestGin()
	router.Use(middleware.Learner())

	return &testEnv{
		router:   router,
		db:       db,
		repo:     repo,
		cat:      cat,
		store:    store,
		registry: quiz.NewRegistry(quiz.NewGenerator(cat, rnd), store.Recorder),
		rnd:      rnd,
		learner:  uuid.NewString(),
	}
}

// do sends a request as the env's learner.
func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	return e.doAs(e.learner, method, path, body)
}

func (e *testEnv) doAs(learnerID, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if learnerID != "" {
		req.Header.Set(middleware.LearnerHeader, learnerID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the "data" member of a success envelope.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

