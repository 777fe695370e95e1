package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/service"
)

func (s *gatewayStub) UpdateStatus(ctx context.Context, status *models.EnrollmentStatus) error {
	s.updated = status
	return nil
}

func newEnrollmentHandler(stub *gatewayStub) *EnrollmentHandler {
	return NewEnrollmentHandler(service.NewEnrollmentService(stub, nil, nil))
}

func TestEnrollmentHandlerUpdateStatus(t *testing.T) {
	stub := &gatewayStub{
		latest: &models.EnrollmentStatus{
			ID:           "100",
			EnrollmentID: "10",
			Status:       models.StatusProvisional,
			CreatedAt:    time.Now(),
		},
	}
	w, c := performRequest(t, http.MethodPut, "/enrollments/10/status", []byte(`{"status":"confirmed"}`))
	c.Params = gin.Params{{Key: "id", Value: "10"}}

	newEnrollmentHandler(stub).UpdateStatus(c)
	// gin only flushes a bodiless c.Status after the handler chain; a
	// directly-invoked handler needs an explicit flush to the recorder.
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, stub.updated)
	assert.Equal(t, models.StatusConfirmed, stub.updated.Status)
}

func TestEnrollmentHandlerUpdateStatusInvalidBody(t *testing.T) {
	w, c := performRequest(t, http.MethodPut, "/enrollments/10/status", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "10"}}

	newEnrollmentHandler(&gatewayStub{}).UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerUpdateStatusNoHistory(t *testing.T) {
	stub := &gatewayStub{latestErr: sql.ErrNoRows}
	w, c := performRequest(t, http.MethodPut, "/enrollments/999/status", []byte(`{"status":"CONFIRMED"}`))
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	newEnrollmentHandler(stub).UpdateStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollmentHandlerUpdateStatusSkippedStage(t *testing.T) {
	stub := &gatewayStub{
		latest: &models.EnrollmentStatus{
			ID:           "100",
			EnrollmentID: "10",
			Status:       models.StatusProvisional,
			CreatedAt:    time.Now(),
		},
	}
	w, c := performRequest(t, http.MethodPut, "/enrollments/10/status", []byte(`{"status":"COMPLETED"}`))
	c.Params = gin.Params{{Key: "id", Value: "10"}}

	newEnrollmentHandler(stub).UpdateStatus(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Nil(t, stub.updated)
}
