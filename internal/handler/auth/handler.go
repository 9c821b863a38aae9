package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicore/hospital-api/internal/handler"
	"github.com/medicore/hospital-api/internal/middleware"
	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/service/auth"
	"github.com/medicore/hospital-api/internal/session"
)

type Handler struct {
	service      auth.AuthService
	cookieMaxAge int
}

func NewHandler(service auth.AuthService, cookieMaxAge int) *Handler {
	return &Handler{service: service, cookieMaxAge: cookieMaxAge}
}

// RegisterRoutes wires the public auth endpoints
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/token", h.IssueToken)
}

// RegisterProtectedRoutes wires the endpoints that need an identity
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, sess, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.SetCookie(session.CookieName, sess.ID, h.cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		if err := h.service.Logout(c.Request.Context(), cookie); err != nil {
			handler.Error(c, err)
			return
		}
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"redirect_to": model.LoginRoute}))
}

func (h *Handler) IssueToken(c *gin.Context) {
	var req model.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.IssueServiceToken(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

// Me returns the authenticated identity from the request context
func (h *Handler) Me(c *gin.Context) {
	role := middleware.UserRole(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"user_id":      middleware.UserID(c),
		"email":        c.GetString(middleware.ContextUserEmail),
		"role":         role,
		"dashboard_to": model.DashboardRoute(role),
	}))
}
