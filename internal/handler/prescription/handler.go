package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicore/hospital-api/internal/handler"
	"github.com/medicore/hospital-api/internal/middleware"
	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/service/prescription"
)

type Handler struct {
	service prescription.PrescriptionService
}

func NewHandler(service prescription.PrescriptionService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires prescriptions. Doctors write them; pharmacists
// read the queue and dispense.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.AuthMiddleware) {
	write := gate.RequireRole(model.RoleDoctor)
	view := gate.RequireRole(model.RoleDoctor, model.RolePharmacist)
	dispense := gate.RequireRole(model.RolePharmacist)

	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", write, h.CreatePrescription)
		prescriptions.GET("", view, h.ListPrescriptions)
		prescriptions.GET("/:id", view, h.GetPrescription)
		prescriptions.POST("/:id/dispense", dispense, h.DispensePrescription)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreatePrescription(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) DispensePrescription(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	dispensed, err := h.service.DispensePrescription(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dispensed))
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	var filter model.PrescriptionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// Doctors see only their own prescriptions
	if middleware.UserRole(c) == model.RoleDoctor {
		filter.DoctorID = middleware.UserID(c)
	}

	prescriptions, err := h.service.ListPrescriptions(c.Request.Context(), &filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}
