package ward

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicore/hospital-api/internal/handler"
	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/service/ward"
)

type Handler struct {
	service ward.WardService
}

func NewHandler(service ward.WardService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the admin ward management endpoints
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	wards := r.Group("/wards")
	{
		wards.POST("", h.CreateWard)
		wards.GET("/:id", h.GetWard)
		wards.PUT("/:id", h.UpdateWard)
		wards.DELETE("/:id", h.DeleteWard)
	}
}

// RegisterOccupancyRoutes exposes the occupancy report to ward staff
func (h *Handler) RegisterOccupancyRoutes(r *gin.RouterGroup) {
	r.GET("/wards", h.ListWards)
}

func (h *Handler) CreateWard(c *gin.Context) {
	var req model.SaveWardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateWard(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetWard(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	w, err := h.service.GetWard(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(w))
}

func (h *Handler) UpdateWard(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.SaveWardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateWard(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteWard(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteWard(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": id}))
}

// ListWards returns every ward with its occupancy figures and display band
func (h *Handler) ListWards(c *gin.Context) {
	wards, err := h.service.ListWards(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	type wardRow struct {
		*model.WardOccupancy
		AvailableBeds    int    `json:"available_beds"`
		OccupancyPercent int    `json:"occupancy_percent"`
		OccupancyBand    string `json:"occupancy_band"`
	}

	rows := make([]wardRow, 0, len(wards))
	for _, w := range wards {
		rows = append(rows, wardRow{
			WardOccupancy:    w,
			AvailableBeds:    w.AvailableBeds(),
			OccupancyPercent: w.OccupancyPercent(),
			OccupancyBand:    w.OccupancyBand(),
		})
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}
