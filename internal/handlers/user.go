package handlers

import (
	"strconv"

	"libms/internal/models"
	"libms/internal/services"
	"libms/pkg/pagination"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=6"`
	TenantID *uint  `json:"tenant_id"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AssignTenantRequest struct {
	TenantID uint   `json:"tenant_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 未指定角色时默认member
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	user, err := h.service.Create(req.Email, req.Username, req.Name, req.Password, req.TenantID, role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// GetByID 获取用户
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	user, err := h.service.GetByID(uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// GetAll 用户列表
func (h *UserHandler) GetAll(c *gin.Context) {
	// 解析分页参数
	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	users, total, err := h.service.GetWithPage(keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	// 计算分页信息
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, users, pageInfo)
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user, err := h.service.Update(uint(id), req.Email, req.Username, req.Name, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "用户删除成功", nil)
}

// ========== 租户成员关系 ==========

// AssignTenant 把用户分配到租户（重复分配只更新角色）
func (h *UserHandler) AssignTenant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	userTenant, err := h.service.AssignTenant(uint(id), req.TenantID, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, userTenant)
}

// RemoveTenant 把用户从租户移除
func (h *UserHandler) RemoveTenant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenantID, err := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "租户ID格式错误")
		return
	}

	if err := h.service.RemoveTenant(uint(id), uint(tenantID)); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "成员关系已移除", nil)
}
