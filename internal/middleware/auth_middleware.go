package middleware

import (
	"strings"

	"libms/internal/services"
	"libms/pkg/jwt"
	"libms/pkg/logger"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 权限中间件
// 令牌只证明身份；租户上下文和管理员能力每次请求都由访问控制服务重新解析
type AuthMiddleware struct {
	jwtManager    *jwt.JWTManager
	accessControl *services.AccessControlService
	tokenService  *services.TokenService
}

func NewAuthMiddleware(accessControl *services.AccessControlService, tokenService *services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:    jwt.GetJWTManager(), // 使用全局JWT管理器
		accessControl: accessControl,
		tokenService:  tokenService,
	}
}

// RequireLogin 登录检查
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		// 提取token
		tokenString := authHeader[7:] // 去掉 "Bearer "

		// 验证token
		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 检查是否已登出吊销
		if m.tokenService != nil {
			revoked, err := m.tokenService.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// 吊销存储不可用时只记录，令牌本身仍然有效
				logger.GetLogger().Warnf("Token revocation check failed: %v", err)
			} else if revoked {
				response.Unauthorized(c, "Token已失效，请重新登录")
				c.Abort()
				return
			}
		}

		// 只保存身份信息，权限由后续中间件按请求解析
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireTenant 租户上下文检查
// 解析主体和活动租户，所有租户域数据访问的前置条件。
// 活动租户来自 X-Tenant-Slug 头或 tenant 查询参数，
// 未指定时默认取主体的第一条成员关系
func (m *AuthMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		tenantSlug := c.GetHeader("X-Tenant-Slug")
		if tenantSlug == "" {
			tenantSlug = c.Query("tenant")
		}

		user, tenant, err := m.accessControl.RequireAuthAndTenant(userID.(uint), tenantSlug)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("tenant", tenant)
		c.Set("tenant_id", tenant.ID)

		c.Next()
	}
}

// RequireAdmin 全局管理员检查
// 系统管理员（邮箱白名单）或任意租户的admin都可通过，不做租户范围限定
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		user, err := m.accessControl.RequireAdmin(userID.(uint))
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("user", user)

		c.Next()
	}
}
