package labtest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicore/hospital-api/internal/handler"
	"github.com/medicore/hospital-api/internal/middleware"
	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/service/labtest"
)

type Handler struct {
	service labtest.LabTestService
}

func NewHandler(service labtest.LabTestService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires lab tests. Doctors request them; lab technicians
// record results and upload reports.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.AuthMiddleware) {
	request := gate.RequireRole(model.RoleDoctor)
	view := gate.RequireRole(model.RoleDoctor, model.RoleLab)
	update := gate.RequireRole(model.RoleLab)

	tests := r.Group("/lab-tests")
	{
		tests.POST("", request, h.RequestTest)
		tests.GET("", view, h.ListTests)
		tests.GET("/:id", view, h.GetTest)
		tests.GET("/:id/report", view, h.DownloadReport)
		tests.PUT("/:id/result", update, h.UpdateResult)
	}
}

func (h *Handler) RequestTest(c *gin.Context) {
	var req model.CreateLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.RequestTest(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetTest(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	test, err := h.service.GetTest(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(test))
}

// UpdateResult accepts the result form plus an optional report PDF as a
// multipart upload.
func (h *Handler) UpdateResult(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateLabResultRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	var report *labtest.ReportUpload
	if fileHeader, err := c.FormFile("report"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read report file"))
			return
		}
		defer file.Close()

		report = &labtest.ReportUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  file,
		}
	}

	updated, err := h.service.UpdateResult(c.Request.Context(), id, &req, report)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DownloadReport(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	test, err := h.service.GetTest(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	path, err := h.service.ReportPath(test)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.FileAttachment(path, test.ReportFile)
}

func (h *Handler) ListTests(c *gin.Context) {
	var filter model.LabTestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// Doctors see only the tests they requested
	if middleware.UserRole(c) == model.RoleDoctor {
		filter.DoctorID = middleware.UserID(c)
	}

	tests, err := h.service.ListTests(c.Request.Context(), &filter)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tests))
}
