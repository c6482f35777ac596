package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
	"github.com/d60-Lab/hostelbuzz/internal/service"
	"github.com/d60-Lab/hostelbuzz/internal/session"
	"github.com/d60-Lab/hostelbuzz/pkg/response"
)

const sessionKey = "session"

// Handler HTTP 处理器集合
type Handler struct {
	sessions   *session.Manager
	feedSvc    service.FeedService
	cookieName string
	cookieTTL  time.Duration
}

func NewHandler(sessions *session.Manager, feedSvc service.FeedService, cookieName string, cookieTTL time.Duration) *Handler {
	if cookieName == "" {
		cookieName = "token"
	}
	return &Handler{sessions: sessions, feedSvc: feedSvc, cookieName: cookieName, cookieTTL: cookieTTL}
}

// RequireSession 校验 token（cookie 或 Bearer），并把会话放入上下文
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := h.token(c)
		if token == "" {
			response.Unauthorized(c, "login required")
			return
		}
		sess, err := h.sessions.Resolve(token)
		if err != nil {
			response.Unauthorized(c, "login required")
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (h *Handler) token(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if v, err := c.Cookie(h.cookieName); err == nil {
		return v
	}
	return ""
}

func currentSession(c *gin.Context) *session.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(*session.Session)
	return sess
}

// writeError maps domain errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, feed.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, feed.ErrInvalidCategory),
		errors.Is(err, feed.ErrInvalidDirection),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, session.ErrEmailRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, session.ErrUnauthenticated):
		response.Unauthorized(c, "login required")
	default:
		response.InternalError(c, err)
	}
}

// Health 存活检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok", "sessions": h.sessions.Len()})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", false, true)
}
