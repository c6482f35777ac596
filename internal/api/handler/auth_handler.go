package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/pkg/response"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	User      feed.User `json:"user"`
	ExpiresAt int64     `json:"expires_at"`
}

// Login 模拟登录，任何凭据均可
// @Summary 登录（模拟）
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response{data=loginResponse}
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sess, token, err := h.sessions.Login(req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	h.setCookie(c, token, int(h.cookieTTL.Seconds()))
	response.Success(c, loginResponse{Token: token, User: sess.User, ExpiresAt: sess.ExpiresAt.Unix()})
}

// Logout 退出登录并丢弃会话
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(h.token(c)); err != nil {
		writeError(c, err)
		return
	}
	h.setCookie(c, "", -1)
	response.Success(c, nil)
}

// Me 当前登录用户
// @Summary 当前用户
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=feed.User}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, currentSession(c).User)
}
