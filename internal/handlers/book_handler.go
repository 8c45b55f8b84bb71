package handlers

import (
	"strconv"

	"libms/internal/services"
	"libms/pkg/pagination"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookRequest struct {
	Title       string  `json:"title"`
	AuthorID    *uint   `json:"author_id"`
	Genre       *string `json:"genre"`
	Publisher   *string `json:"publisher"`
	VolumeCount *int    `json:"volume_count"`
	Library     *string `json:"library"`
	Shelf       *string `json:"shelf"`
	Number      *string `json:"number"`
	Note        *string `json:"note"`
}

func (r *BookRequest) toInput() services.BookInput {
	return services.BookInput{
		Title:       r.Title,
		AuthorID:    r.AuthorID,
		Genre:       r.Genre,
		Publisher:   r.Publisher,
		VolumeCount: r.VolumeCount,
		Library:     r.Library,
		Shelf:       r.Shelf,
		Number:      r.Number,
		Note:        r.Note,
	}
}

type BookHandler struct {
	service *services.BookService
}

func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{
		service: service,
	}
}

// Create 创建图书
func (h *BookHandler) Create(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	book, err := h.service.Create(tenantID, req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, book)
}

// GetByID 获取图书
func (h *BookHandler) GetByID(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	book, err := h.service.GetByID(tenantID, uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, book)
}

// GetAll 图书列表
func (h *BookHandler) GetAll(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	// 解析分页参数
	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	books, total, err := h.service.GetWithPage(tenantID, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	// 计算分页信息
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, books, pageInfo)
}

// Update 更新图书
func (h *BookHandler) Update(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	book, err := h.service.Update(tenantID, uint(id), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, book)
}

// Delete 删除图书
func (h *BookHandler) Delete(c *gin.Context) {
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

	response.SuccessWithMessage(c, "图书删除成功", nil)
}
