package service

import (
	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

// StatusTransitioner enforces the linear enrollment lifecycle:
//
//	PROVISIONAL -> CONFIRMED -> IN_PROGRESS -> COMPLETED
//
// COMPLETED is terminal. Every edge not in the chain, including
// same-state, skip-ahead and backward moves, is rejected.
type StatusTransitioner struct{}

// Apply checks the edge from current.Status to target and, when allowed,
// returns a copy of the status record carrying the target value. The
// input record is never modified.
func (StatusTransitioner) Apply(current models.EnrollmentStatus, target models.StatusValue) (models.EnrollmentStatus, error) {
	next, ok := current.Status.Next()
	if !ok || next != target {
		return models.EnrollmentStatus{}, appErrors.InvalidTransition(string(current.Status), string(target))
	}
	updated := current
	updated.Status = target
	return updated, nil
}
