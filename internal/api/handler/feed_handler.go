package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/pkg/response"
)

type createPostRequest struct {
	Content  string `json:"content" binding:"required,min=10,max=280"`
	Category string `json:"category" binding:"omitempty,category"`
}

type voteRequest struct {
	Direction string `json:"direction" binding:"required,direction"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required,max=280"`
}

type categoryItem struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ListCategories 分类标签（含 All）
// @Summary 分类列表
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response{data=[]categoryItem}
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	items := []categoryItem{{Name: feed.AllLabel}}
	for _, cat := range feed.Categories() {
		items = append(items, categoryItem{Name: cat.String(), Icon: cat.Icon()})
	}
	response.Success(c, items)
}

// ListPosts 按分类筛选帖子，时间倒序
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Param category query string false "分类（All/Mess/Laundry/Cafe/General）" default(All)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	f, err := feed.ParseFilter(c.DefaultQuery("category", feed.AllLabel))
	if err != nil {
		writeError(c, err)
		return
	}
	posts, err := h.feedSvc.ListPosts(c.Request.Context(), currentSession(c), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"category": f.String(), "total": len(posts), "list": posts})
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=feed.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	p, err := h.feedSvc.GetPost(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// CreatePost 发帖，分类缺省为 General
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response{data=feed.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category := feed.CategoryGeneral
	if req.Category != "" {
		var err error
		if category, err = feed.ParseCategory(req.Category); err != nil {
			writeError(c, err)
			return
		}
	}
	p, err := h.feedSvc.CreatePost(c.Request.Context(), currentSession(c), req.Content, category)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// Vote 投票（up/down）
// @Summary 投票
// @Tags 帖子
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param request body voteRequest true "投票方向"
// @Success 200 {object} response.Response{data=feed.Post}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/vote [post]
func (h *Handler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dir, err := feed.ParseDirection(req.Direction)
	if err != nil {
		writeError(c, err)
		return
	}
	p, err := h.feedSvc.Vote(c.Request.Context(), currentSession(c), c.Param("id"), dir)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// Comment 发表评论
// @Summary 评论
// @Tags 帖子
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response{data=feed.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.feedSvc.Comment(c.Request.Context(), currentSession(c), c.Param("id"), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, cm)
}

// Report 举报帖子（仅记录并转发）
// @Summary 举报
// @Tags 帖子
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=feed.Acknowledgment}
// @Failure 401 {object} response.Response
// @Router /api/v1/posts/{id}/report [post]
func (h *Handler) Report(c *gin.Context) {
	ack, err := h.feedSvc.Report(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, ack)
}
