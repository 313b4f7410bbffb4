package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/egzit/egzit/internal/authz"
	"github.com/egzit/egzit/internal/cache"
	"github.com/egzit/egzit/internal/config"
	adminhandlers "github.com/egzit/egzit/internal/http/handlers/admin"
	publichandlers "github.com/egzit/egzit/internal/http/handlers/public"
	"github.com/egzit/egzit/internal/http/response"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP route tree
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "egzit"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// open endpoints, no auth
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/settings", publicHandler.GetCaptchaSetting)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/places", publicHandler.ListPlaces)
			public.POST("/estimate", publicHandler.EstimateTrip)
			public.GET("/movers", publicHandler.ListActiveMovers)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// customer endpoints
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.GET("/me/login-logs", publicHandler.ListMyLoginLogs)
			user.POST("/moves", publicHandler.SubmitMove)
			user.GET("/moves", publicHandler.ListMyMoves)
			user.GET("/moves/:id", publicHandler.GetMyMove)
			user.POST("/moves/:id/pay", publicHandler.PayMove)
			user.POST("/moves/:id/cancel", publicHandler.CancelMyMove)
			user.GET("/moves/:id/tracking", publicHandler.GetMoveTracking)
			user.GET("/moves/:id/events", publicHandler.ListMyMoveEvents)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetCurrentAdmin)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// move lifecycle
				authorized.GET("/moves", adminHandler.GetAdminMoves)
				authorized.GET("/moves/status-counts", adminHandler.GetAdminMoveStatusCounts)
				authorized.GET("/moves/:id", adminHandler.GetAdminMove)
				authorized.POST("/moves/:id/approve", adminHandler.ApproveMove)
				authorized.POST("/moves/:id/schedule", adminHandler.ScheduleMove)
				authorized.POST("/moves/:id/start", adminHandler.StartMove)
				authorized.POST("/moves/:id/complete", adminHandler.CompleteMove)
				authorized.POST("/moves/:id/cancel", adminHandler.CancelMove)
				authorized.GET("/moves/:id/tracking", adminHandler.GetAdminMoveTracking)
				authorized.POST("/moves/:id/position", adminHandler.ReportMovePosition)

				// quoting
				authorized.POST("/quotes", adminHandler.CreateQuote)
				authorized.GET("/quotes", adminHandler.GetAdminQuotes)
				authorized.GET("/quotes/:id", adminHandler.GetAdminQuote)

				// crews
				authorized.GET("/movers", adminHandler.GetAdminMovers)
				authorized.GET("/movers/:id", adminHandler.GetAdminMover)
				authorized.POST("/movers", adminHandler.CreateMover)
				authorized.PUT("/movers/:id", adminHandler.UpdateMover)
				authorized.DELETE("/movers/:id", adminHandler.DeleteMover)

				// tracking journal and delivery performance
				authorized.GET("/tracking-events", adminHandler.GetAdminTrackingEvents)
				authorized.GET("/performance", adminHandler.GetAdminPerformance)
				authorized.GET("/performance/summary", adminHandler.GetAdminPerformanceSummary)

				// customer management
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id", adminHandler.UpdateAdminUser)
				authorized.PATCH("/users/:id/status", adminHandler.UpdateAdminUserStatus)
				authorized.GET("/user-login-logs", adminHandler.GetAdminUserLoginLogs)

				// access control
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	r.GET("/health", publicHandler.Health)

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
