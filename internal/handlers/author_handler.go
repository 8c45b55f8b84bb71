package handlers

import (
	"strconv"

	"libms/internal/services"
	"libms/pkg/pagination"
	"libms/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthorRequest struct {
	Name            string  `json:"name"`
	Nickname        *string `json:"nickname"`
	Origin          *string `json:"origin"`
	BirthDate       *string `json:"birth_date"`
	DeathDate       *string `json:"death_date"`
	BirthPlace      *string `json:"birth_place"`
	DeathPlace      *string `json:"death_place"`
	OfficialDuties  *string `json:"official_duties"`
	FiqhMadhhab     *string `json:"fiqh_madhhab"`
	AqidahMadhhab   *string `json:"aqidah_madhhab"`
	FamousWorks     *string `json:"famous_works"`
	Teachers        *string `json:"teachers"`
	Students        *string `json:"students"`
	StatusInTabakat *string `json:"status_in_tabakat"`
	ExpertiseAreas  *string `json:"expertise_areas"`
	ImportantNotes  *string `json:"important_notes"`
}

func (r *AuthorRequest) toInput() services.AuthorInput {
	return services.AuthorInput{
		Name:            r.Name,
		Nickname:        r.Nickname,
		Origin:          r.Origin,
		BirthDate:       r.BirthDate,
		DeathDate:       r.DeathDate,
		BirthPlace:      r.BirthPlace,
		DeathPlace:      r.DeathPlace,
		OfficialDuties:  r.OfficialDuties,
		FiqhMadhhab:     r.FiqhMadhhab,
		AqidahMadhhab:   r.AqidahMadhhab,
		FamousWorks:     r.FamousWorks,
		Teachers:        r.Teachers,
		Students:        r.Students,
		StatusInTabakat: r.StatusInTabakat,
		ExpertiseAreas:  r.ExpertiseAreas,
		ImportantNotes:  r.ImportantNotes,
	}
}

type AuthorHandler struct {
	service *services.AuthorService
}

func NewAuthorHandler(service *services.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		service: service,
	}
}

// Create 创建作者
func (h *AuthorHandler) Create(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	author, err := h.service.Create(tenantID, req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, author)
}

// GetByID 获取作者
func (h *AuthorHandler) GetByID(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	author, err := h.service.GetByID(tenantID, uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, author)
}

// GetAll 作者列表
func (h *AuthorHandler) GetAll(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	// 解析分页参数
	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	authors, total, err := h.service.GetWithPage(tenantID, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	// 计算分页信息
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, authors, pageInfo)
}

// Update 更新作者
func (h *AuthorHandler) Update(c *gin.Context) {
	tenantID := c.MustGet("tenant_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	author, err := h.service.Update(tenantID, uint(id), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, author)
}

// Delete 删除作者
func (h *AuthorHandler) Delete(c *gin.Context) {
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

	response.SuccessWithMessage(c, "作者删除成功", nil)
}
