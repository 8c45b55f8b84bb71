package handlers

import (
	"time"

	"libms/internal/models"
	"libms/internal/services"
	"libms/pkg/jwt"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService   *services.UserService
	accessControl *services.AccessControlService
	tokenService  *services.TokenService
	jwtManager    *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService, accessControl *services.AccessControlService, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		accessControl: accessControl,
		tokenService:  tokenService,
		jwtManager:    jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID            uint                `json:"id"`
	Email         string              `json:"email"`
	Username      *string             `json:"username"`
	Name          *string             `json:"name"`
	IsAdmin       bool                `json:"is_admin"`
	IsSystemAdmin bool                `json:"is_system_admin"`
	Tenants       []models.UserTenant `json:"tenants"`
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 根据邮箱获取用户（不区分大小写）
	user, err := h.userService.GetByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 检查用户状态
	if !h.userService.IsActive(user) {
		response.Unauthorized(c, "用户已被禁用")
		return
	}

	// 验证密码
	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 生成Token，只承载身份
	username := ""
	if user.Username != nil {
		username = *user.Username
	}
	token, err := h.jwtManager.GenerateToken(user.ID, username, user.Email)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	// 计算过期时间
	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	// 返回完整身份信息（含成员关系和管理员标记）
	full, err := h.accessControl.ResolvePrincipal(user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp := LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      h.userInfo(full),
	}

	response.Success(c, resp)
}

// Logout 用户登出
// 把令牌的jti吊销到过期为止，之后同一令牌无法再通过登录检查
func (h *AuthHandler) Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		response.Success(c, gin.H{"message": "登出成功"})
		return
	}

	claims := claimsValue.(*jwt.JWTClaims)
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.tokenService.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
		response.ServerError(c, "登出失败")
		return
	}

	response.Success(c, gin.H{"message": "登出成功"})
}

// Me 获取当前用户完整信息
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "请先登录")
		return
	}

	user, err := h.accessControl.ResolvePrincipal(userID.(uint))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, h.userInfo(user))
}

func (h *AuthHandler) userInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Name:          user.Name,
		IsAdmin:       h.accessControl.IsAdmin(user),
		IsSystemAdmin: h.accessControl.IsSystemAdmin(user),
		Tenants:       user.UserTenants,
	}
}
