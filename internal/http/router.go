package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-stories/internal/service"
)

// Pinger lo implementa *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	sessions *service.SessionService,
	cookie CookieConfig,
	accountH *AccountHandler,
	storyH *StoryHandler,
	rewriteH *RewriteHandler,
	db Pinger,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", healthHandler(db))

	requireSession := SessionMiddleware(sessions, cookie.Name)

	auth := r.Group("/auth", jsonContentTypeMiddleware())
	auth.POST("/register", accountH.Register)
	auth.POST("/login", accountH.Login)
	auth.POST("/logout", accountH.Logout)
	auth.GET("/session", requireSession, accountH.Session)

	stories := r.Group("/stories", requireSession, jsonContentTypeMiddleware())
	stories.GET("", storyH.List)
	stories.POST("", storyH.Create)
	stories.POST("/optimize", rewriteH.Optimize)
	stories.GET("/:id", storyH.Get)
	stories.PUT("/:id", storyH.Update)
	stories.DELETE("/:id", storyH.Delete)
	stories.POST("/:id/optimize", rewriteH.OptimizeStory)

	pages := r.Group("/stories", requireSession)
	pages.GET("/:id/html", storyH.RenderHTML)

	return r
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
