package admission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicore/hospital-api/internal/handler"
	"github.com/medicore/hospital-api/internal/middleware"
	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/service/admission"
)

type Handler struct {
	service admission.AdmissionService
}

func NewHandler(service admission.AdmissionService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires admission management. Reception and admin manage
// the lifecycle; nurses and doctors read and update care notes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.AuthMiddleware) {
	manage := gate.RequireRole(model.RoleReceptionist, model.RoleAdmin)
	care := gate.RequireRole(model.RoleNurse, model.RoleDoctor)
	view := gate.RequireRole(model.RoleReceptionist, model.RoleAdmin, model.RoleNurse, model.RoleDoctor)

	admissions := r.Group("/admissions")
	{
		admissions.POST("", manage, h.AdmitPatient)
		admissions.GET("", view, h.ListAdmissions)
		admissions.GET("/:id", view, h.GetAdmission)
		admissions.PUT("/:id", manage, h.UpdateAdmission)
		admissions.PUT("/:id/notes", care, h.UpdateNotes)
		admissions.POST("/:id/discharge", manage, h.DischargePatient)
	}
}

func (h *Handler) AdmitPatient(c *gin.Context) {
	var req model.CreateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.AdmitPatient(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetAdmission(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetAdmission(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(a))
}

func (h *Handler) UpdateAdmission(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateAdmission(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) UpdateNotes(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.UpdateNotes(c.Request.Context(), id, req.Notes); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"updated": id}))
}

func (h *Handler) DischargePatient(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	discharged, err := h.service.DischargePatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(discharged))
}

func (h *Handler) ListAdmissions(c *gin.Context) {
	var filter model.AdmissionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	admissions, err := h.service.ListAdmissions(c.Request.Context(), &filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(admissions))
}
