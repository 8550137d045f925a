package schedule

import (
	"errors"
	"strings"

	scheduleerrors "go-workforce/internal/schedule/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scheduleerrors.ErrScheduleNotFound
	}

	// The validator races with concurrent writers; the unique index is the
	// last line of defense and maps to the same conflict error.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_schedule_day" {
			return scheduleerrors.ErrScheduleConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_schedule_day") {
		return scheduleerrors.ErrScheduleConflict
	}

	return err
}
