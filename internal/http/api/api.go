// Package api registers the HTTP routes and the middleware that guards them.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/revisehub/revisehub/internal/config"
	"github.com/revisehub/revisehub/internal/http/api/handlers"
	"github.com/revisehub/revisehub/internal/models"
	"github.com/revisehub/revisehub/internal/ratelimit"
	"github.com/revisehub/revisehub/internal/security"
	"github.com/revisehub/revisehub/internal/store"
	"gorm.io/gorm"
)

// RegisterRoutes registers all routes, middleware, and handlers.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, authLimit config.AuthLimitConfig) {
	if r == nil || db == nil {
		return
	}

	categories := store.NewCategoryStore(db)
	questions := store.NewQuestionStore(db)
	settings := store.NewSettingsStore(db)
	reviews := store.NewReviewStore(db)

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	versionHandler := handlers.NewVersionHandler()
	r.GET("/v0/version", versionHandler.GetVersion)

	authHandler := handlers.NewAuthHandler(db, jwtCfg, settings)
	authGroup := r.Group("/v0/auth")
	authGroup.Use(authRateLimitMiddleware(ratelimit.NewMemoryLimiter(authLimit.Window), authLimit.Requests))
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	authed := r.Group("/v0")
	authed.Use(userAuthMiddleware(db, jwtCfg))

	authed.GET("/auth/session", authHandler.Session)

	categoryHandler := handlers.NewCategoryHandler(categories)
	authed.GET("/categories", categoryHandler.List)
	authed.POST("/categories", categoryHandler.Create)
	authed.PUT("/categories/:id", categoryHandler.Rename)
	authed.DELETE("/categories/:id", categoryHandler.Delete)

	settingHandler := handlers.NewSettingHandler(settings)
	authed.GET("/settings/revision-plan", settingHandler.GetRevisionPlan)
	authed.PUT("/settings/revision-plan", settingHandler.UpdateRevisionPlan)

	questionHandler := handlers.NewQuestionHandler(questions, categories, settings, reviews)
	authed.GET("/questions", questionHandler.List)
	authed.POST("/questions", questionHandler.BatchCreate)
	authed.POST("/questions/:id/rate", questionHandler.Rate)
	authed.DELETE("/questions/:id", questionHandler.Delete)

	reviewHandler := handlers.NewReviewHandler(reviews)
	authed.GET("/reviews/stats", reviewHandler.Stats)
}

// userAuthMiddleware validates session JWTs and loads user context.
func userAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseUserToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user disabled"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Next()
	}
}

// authRateLimitMiddleware applies the fixed-window limit per client address.
func authRateLimitMiddleware(limiter ratelimit.Limiter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ratelimit.KeyForIP(c.ClientIP())
		res, errAllow := limiter.Allow(c.Request.Context(), key, limit, time.Now())
		if errAllow != nil {
			c.Next()
			return
		}
		if !res.Allowed {
			retryAfter := int(time.Until(res.Reset) / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
