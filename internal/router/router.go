package router

import (
	"time"

	"libms/internal/database"
	"libms/internal/handlers"
	"libms/internal/middleware"
	"libms/internal/services"
	"libms/pkg/config"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	db := database.GetDB()
	cfg := config.GetConfig()

	accessControl := services.NewAccessControlService(db, cfg.Admin.SystemAdminEmails)
	tokenService := services.NewTokenService(database.GetRedisClient())
	userService := services.NewUserService(db)

	auth := middleware.NewAuthMiddleware(accessControl, tokenService)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由
		authHandler := handlers.NewAuthHandler(userService, accessControl, tokenService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)                            // 用户登录
			authGroup.POST("/logout", auth.RequireLogin(), authHandler.Logout)     // 用户登出（吊销令牌）
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)              // 当前用户完整信息
		}

		// 租户域数据路由：登录 + 租户上下文，任意角色
		// 活动租户由 X-Tenant-Slug 头或 tenant 查询参数指定
		bookHandler := handlers.NewBookHandler(services.NewBookService(db))
		books := api.Group("/books", auth.RequireLogin(), auth.RequireTenant())
		{
			books.POST("", bookHandler.Create)
			books.GET("", bookHandler.GetAll)
			books.GET("/:id", bookHandler.GetByID)
			books.PUT("/:id", bookHandler.Update)
			books.DELETE("/:id", bookHandler.Delete)
		}

		authorHandler := handlers.NewAuthorHandler(services.NewAuthorService(db))
		authors := api.Group("/authors", auth.RequireLogin(), auth.RequireTenant())
		{
			authors.POST("", authorHandler.Create)
			authors.GET("", authorHandler.GetAll)
			authors.GET("/:id", authorHandler.GetByID)
			authors.PUT("/:id", authorHandler.Update)
			authors.DELETE("/:id", authorHandler.Delete)
		}

		toBuyHandler := handlers.NewToBuyHandler(services.NewToBuyService(db))
		toBuy := api.Group("/to-buy", auth.RequireLogin(), auth.RequireTenant())
		{
			toBuy.POST("", toBuyHandler.Create)
			toBuy.GET("", toBuyHandler.GetAll)
			toBuy.GET("/:id", toBuyHandler.GetByID)
			toBuy.PUT("/:id", toBuyHandler.Update)
			toBuy.DELETE("/:id", toBuyHandler.Delete)
		}

		// 全局管理面板路由：需要管理员，不做租户范围限定
		// 任意租户的admin或系统管理员都可以管理所有租户和用户
		admin := api.Group("/admin", auth.RequireLogin(), auth.RequireAdmin())
		{
			tenantHandler := handlers.NewTenantHandler(services.NewTenantService(db))
			tenants := admin.Group("/tenants")
			{
				tenants.POST("", tenantHandler.Create)
				tenants.GET("", tenantHandler.GetAll)
				tenants.GET("/:id", tenantHandler.GetByID)
				tenants.PUT("/:id", tenantHandler.Update)
				tenants.DELETE("/:id", tenantHandler.Delete)
			}

			userHandler := handlers.NewUserHandler(userService)
			users := admin.Group("/users")
			{
				users.POST("", userHandler.Create)
				users.GET("", userHandler.GetAll)
				users.GET("/:id", userHandler.GetByID)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", userHandler.Delete)

				// 租户成员关系管理
				users.POST("/:id/tenants", userHandler.AssignTenant)
				users.DELETE("/:id/tenants/:tenant_id", userHandler.RemoveTenant)
			}
		}
	}
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ping 连通性检查
func ping(c *gin.Context) {
	response.Success(c, gin.H{
		"message": "pong",
	})
}
