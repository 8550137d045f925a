package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { poolDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)
	return NewRepository(gormDB), poolMock
}

// beginMockTx hands out a transaction on its own mocked connection so the
// tests can tell apart statements on the pool from statements on the tx.
func beginMockTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock) {
	t.Helper()

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { txDB.Close() })

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)
	return tx, txMock
}

// A write issued through WithTx must run on the caller's transaction, not on
// the pool the repository was built over, so the record and its outbox event
// commit or roll back together.
func TestWithTxRoutesWritesThroughTransaction(t *testing.T) {
	repo, poolMock := newMockRepo(t)
	tx, txMock := beginMockTx(t)

	record := &AttendanceRecord{
		ID:               uuid.New(),
		EmployeeID:       uuid.New(),
		RecordDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		AttendanceStatus: StatusNormal,
		WorkHours:        decimal.Zero.Round(2),
		OvertimeHours:    decimal.Zero.Round(2),
	}
	txMock.ExpectExec(`UPDATE "attendance_records" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), record))
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestWithTxRoutesReadsThroughTransaction(t *testing.T) {
	repo, poolMock := newMockRepo(t)
	tx, txMock := beginMockTx(t)

	employeeID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	txMock.ExpectQuery(`SELECT \* FROM "attendance_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "record_date", "attendance_status"}).
			AddRow(uuid.NewString(), employeeID.String(), day, StatusNormal))

	record, err := repo.WithTx(tx).FindByEmployeeAndDate(context.Background(), employeeID, day)
	assert.NoError(t, err)
	assert.Equal(t, employeeID, record.EmployeeID)
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
