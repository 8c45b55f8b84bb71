package handlers

import (
	"strconv"

	"libms/internal/services"
	"libms/pkg/pagination"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CreateTenantRequest 请求结构体
type CreateTenantRequest struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	OwnerID *uint  `json:"owner_id"`
}

type UpdateTenantRequest struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	OwnerID *uint  `json:"owner_id"`
}

type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{
		service: service,
	}
}

// Create 创建租户
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 解析验证错误，提供更友好的提示
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			errorMsg := "参数验证失败"
			for _, fieldErr := range validationErr {
				switch fieldErr.Field() {
				case "Name":
					errorMsg = "租户名称不能为空"
				case "Slug":
					errorMsg = "租户标识不能为空"
				}
			}
			response.BadRequest(c, errorMsg)
			return
		}
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.Create(req.Name, req.Slug, req.OwnerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tenant)
}

// GetByID 获取租户
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant, err := h.service.GetByID(uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tenant)
}

// GetAll 租户列表
func (h *TenantHandler) GetAll(c *gin.Context) {
	// 解析分页参数
	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	tenants, total, err := h.service.GetWithPage(keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	// 计算分页信息
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}

// Update 更新租户
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.Update(uint(id), req.Name, req.Slug, req.OwnerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tenant)
}

// Delete 删除租户
// 名下还有数据或成员时会被拒绝
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "租户删除成功", nil)
}
