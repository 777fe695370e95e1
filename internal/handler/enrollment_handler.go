package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/service"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

// UpdateStatusRequest carries the target lifecycle stage.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// EnrollmentHandler exposes enrollment status endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// UpdateStatus godoc
// @Summary Advance the status of an enrollment
// @Description Moves the enrollment's current status along the PROVISIONAL -> CONFIRMED -> IN_PROGRESS -> COMPLETED chain.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body UpdateStatusRequest true "Target status"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /enrollments/{id}/status [put]
func (h *EnrollmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	target := models.StatusValue(strings.ToUpper(req.Status))
	if err := h.enrollments.UpdateStatus(c.Request.Context(), c.Param("id"), target); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
