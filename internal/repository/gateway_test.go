package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
)

func TestGatewayTransactCommits(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	gateway := NewGateway(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO enrollment_statuses .+ RETURNING id").
		WithArgs("10", models.StatusProvisional, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("100"))
	mock.ExpectCommit()

	err := gateway.Transact(context.Background(), func(tx Gateway) error {
		_, err := tx.InsertStatus(context.Background(), &models.EnrollmentStatus{
			EnrollmentID: "10",
			Status:       models.StatusProvisional,
		})
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayTransactRollsBackOnCallbackError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	gateway := NewGateway(db)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := gateway.Transact(context.Background(), func(tx Gateway) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayTransactRollsBackOnQueryError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	gateway := NewGateway(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students .+ RETURNING id").
		WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	err := gateway.Transact(context.Background(), func(tx Gateway) error {
		_, err := tx.InsertStudent(context.Background(), &models.Student{Name: "Mitsuo Morimoto"})
		return err
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayTransactNestedScopeJoins(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	gateway := NewGateway(db)

	// One Begin/Commit pair; the inner Transact joins the outer
	// transaction instead of opening its own.
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO enrollment_statuses .+ RETURNING id").
		WithArgs("10", models.StatusProvisional, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("100"))
	mock.ExpectCommit()

	err := gateway.Transact(context.Background(), func(tx Gateway) error {
		return tx.Transact(context.Background(), func(inner Gateway) error {
			_, err := inner.InsertStatus(context.Background(), &models.EnrollmentStatus{
				EnrollmentID: "10",
				Status:       models.StatusProvisional,
			})
			return err
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
