package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/service"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

// StudentHandler exposes the enrollment detail endpoints.
type StudentHandler struct {
	enrollments *service.EnrollmentService
	exports     *service.ExportService
}

// NewStudentHandler constructs StudentHandler. The export service is
// optional; without it Export responds 404.
func NewStudentHandler(enrollments *service.EnrollmentService, exports *service.ExportService) *StudentHandler {
	return &StudentHandler{enrollments: enrollments, exports: exports}
}

// List godoc
// @Summary Search enrollment details
// @Description Lists students with nested enrollments and status history. Without query parameters this returns everything.
// @Tags Students
// @Produce json
// @Param name query string false "Student name substring"
// @Param courseName query string false "Course name substring"
// @Param startDate query string false "Course start lower bound (RFC 3339)"
// @Param endDate query string false "Course end upper bound (RFC 3339)"
// @Param status query string false "Current enrollment status"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter, err := parseSearchFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	details, err := h.enrollments.SearchWithConditions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Get godoc
// @Summary Get one enrollment detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	detail, err := h.enrollments.SearchOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Register godoc
// @Summary Register a student with course enrollments
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.enrollments.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Update godoc
// @Summary Overwrite a student and their enrollments
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Update payload"
// @Success 204
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollments.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the enrollment roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exports/students [get]
func (h *StudentHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is not enabled"))
		return
	}
	format := service.ReportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	result, err := h.exports.Render(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func parseSearchFilter(c *gin.Context) (models.SearchFilter, error) {
	var filter models.SearchFilter
	filter.Name = c.Query("name")
	filter.CourseName = c.Query("courseName")

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "startDate must be RFC 3339")
		}
		filter.StartDate = &parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "endDate must be RFC 3339")
		}
		filter.EndDate = &parsed
	}
	if raw := c.Query("status"); raw != "" {
		status := models.StatusValue(strings.ToUpper(raw))
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown status value: "+raw)
		}
		filter.Status = status
	}
	return filter, nil
}
