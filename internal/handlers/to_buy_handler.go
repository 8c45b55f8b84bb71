package handlers

import (
	"strconv"

	"libms/internal/services"
	"libms/pkg/pagination"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

type ToBuyRequest struct {
	Title       string  `json:"title"`
	AuthorID    *uint   `json:"author_id"`
	Genre       *string `json:"genre"`
	Publisher   *string `json:"publisher"`
	VolumeCount *int    `json:"volume_count"`
	Note        *string `json:"note"`
	Status      string  `json:"status"`
}

func (r *ToBuyRequest) toInput() services.ToBuyInput {
	return services.ToBuyInput{
		Title:       r.Title,
		AuthorID:    r.AuthorID,
		Genre:       r.Genre,
		Publisher:   r.Publisher,
		VolumeCount: r.VolumeCount,
		Note:        r.Note,
		Status:      r.Status,
	}
}

type ToBuyHandler struct {
	service *services.ToBuyService
}

func NewToBuyHandler(service *services.ToBuyService) *ToBuyHandler {
	return &ToBuyHandler{
		service: service,
	}
}

// Create 创建待购记录
func (h *ToBuyHandler) Create(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	var req ToBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.service.Create(tenantID, req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, item)
}

// GetByID 获取待购记录
func (h *ToBuyHandler) GetByID(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	item, err := h.service.GetByID(tenantID, uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, item)
}

// GetAll 待购列表（支持status过滤）
func (h *ToBuyHandler) GetAll(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	// 解析分页参数
	pageParams := pagination.ParsePageParams(c)
	status := c.Query("status")

	items, total, err := h.service.GetWithPage(tenantID, status, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// 计算分页信息
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, items, pageInfo)
}

// Update 更新待购记录
func (h *ToBuyHandler) Update(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req ToBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.service.Update(tenantID, uint(id), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, item)
}

// Delete 删除待购记录
func (h *ToBuyHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(tenantID, uint(id)); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "待购记录删除成功", nil)
}
