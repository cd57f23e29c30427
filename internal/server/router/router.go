package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(catalogue *handlers.CatalogueHandler, drafts *handlers.DraftHandler, allowOrigin string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(corsMiddleware(allowOrigin))

	// Document routes kept for existing front ends.
	r.GET("/data.json", catalogue.GetIngredientDocument)
	r.POST("/data.json", catalogue.PutIngredientDocument)
	r.GET("/recipes", catalogue.GetRecipeDocument)
	r.POST("/recipes", catalogue.PutRecipeDocument)

	api := r.Group("/api")
	api.GET("/ingredients", catalogue.GetIngredientDocument)
	api.POST("/ingredients", catalogue.AddIngredient)
	api.POST("/missing", catalogue.CheckMissing)
	api.POST("/evaluate", catalogue.EvaluateAdHoc)

	api.GET("/recipes", catalogue.ListRecipes)
	api.POST("/recipes", catalogue.AddRecipe)
	api.DELETE("/recipes/:name", catalogue.DeleteRecipe)
	api.GET("/recipes/:name/evaluation", catalogue.Evaluation)
	api.GET("/recipes/:name/breakdown/:tier", catalogue.Breakdown)
	api.POST("/recipes/:name/export", catalogue.Export)

	api.POST("/drafts", drafts.Start)
	api.GET("/drafts/:id", drafts.Get)
	api.DELETE("/drafts/:id", drafts.Cancel)
	api.POST("/drafts/:id/ingredients", drafts.Resolve)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// corsMiddleware answers preflight requests before routing.
func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
