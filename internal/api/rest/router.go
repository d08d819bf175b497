package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Z4rru/hangulmastery/internal/api/middleware"
	"github.com/Z4rru/hangulmastery/internal/api/rest/handler"
	"github.com/Z4rru/hangulmastery/internal/config"
	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/progress"
	"github.com/Z4rru/hangulmastery/internal/quiz"
	"github.com/Z4rru/hangulmastery/internal/sampling"
	"github.com/Z4rru/hangulmastery/internal/search"
)

// Services are the dependencies the routes are built from.
type Services struct {
	DB       *database.DB
	Repo     database.RepositoryInterface
	Search   *search.Engine
	Catalog  *content.Catalog
	Store    *progress.Store
	Registry *quiz.Registry
	Rand     sampling.Rand
	Log      *zap.Logger
	Now      func() time.Time
}

// SetupRouter sets up the Gin router with all routes. The returned rate
// limiter is nil when rate limiting is disabled.
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, *middleware.RateLimiter) {
	gin.SetMode(cfg.Server.Mode)

	log := svc.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log), middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.AllowOrigins))

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		router.Use(limiter.Middleware())
	}

	v1 := router.Group("/api/v1")
	v1.GET("/health", handler.HealthHandler(svc.DB))
	v1.GET("/stats", handler.StatsHandler(svc.Repo))

	// everything below is learner scoped
	api := v1.Group("", middleware.Learner())
	{
		contentHandler := handler.NewContentHandler(svc.Catalog, svc.Rand, svc.Now)
		api.GET("/hangul", contentHandler.Hangul)
		api.GET("/hangul/syllables", contentHandler.Syllables)
		api.GET("/grammar", contentHandler.Grammar)
		api.GET("/grammar/pronunciation", contentHandler.Pronunciation)
		api.GET("/grammar/sentences", contentHandler.Sentences)
		api.POST("/grammar/sentences/:id/check", contentHandler.CheckSentence)
		api.GET("/grammar/particles", contentHandler.Particles)
		api.GET("/culture", contentHandler.Culture)
		api.GET("/wellness", contentHandler.Wellness)
		api.GET("/word-of-day", contentHandler.WordOfDay)

		progressHandler := handler.NewProgressHandler(svc.Catalog, svc.Store, svc.Rand)
		api.GET("/home", progressHandler.Home)
		api.GET("/sections", progressHandler.Sections)
		api.GET("/progress", progressHandler.Progress)
		api.POST("/progress/visits", progressHandler.RecordVisit)
		api.GET("/progress/quiz-stats", progressHandler.QuizStats)
		api.GET("/achievements", progressHandler.Achievements)

		vocabHandler := handler.NewVocabularyHandler(svc.Catalog, svc.Repo, svc.Search, svc.Store)
		api.GET("/vocabulary", vocabHandler.List)
		api.GET("/vocabulary/categories", vocabHandler.Categories)
		api.GET("/vocabulary/search", vocabHandler.Search)
		api.GET("/vocabulary/words/:korean", vocabHandler.Word)
		api.GET("/vocabulary/mastered", vocabHandler.Mastered)
		api.POST("/vocabulary/mastered", vocabHandler.ToggleMastered)

		quizHandler := handler.NewQuizHandler(svc.Registry)
		api.GET("/quiz/modes", quizHandler.Modes)
		api.POST("/quiz/sessions", quizHandler.Create)
		api.GET("/quiz/sessions/:id", quizHandler.Get)
		api.POST("/quiz/sessions/:id/answer", quizHandler.Answer)
		api.POST("/quiz/sessions/:id/next", quizHandler.Next)
		api.POST("/quiz/sessions/:id/restart", quizHandler.Restart)
		api.DELETE("/quiz/sessions/:id", quizHandler.Delete)
	}

	return router, limiter
}
