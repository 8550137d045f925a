package shift

import (
	"context"
	"database/sql"

	"go-workforce/internal/domain"
	shifterrors "go-workforce/internal/shift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=shift_service.go -destination=mocks/shift_service_mock.go -package=mocks
type Service interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetAll(ctx context.Context) ([]ShiftResponse, error)
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("shift.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error) {
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return ShiftResponse{}, err
	}

	entity := &Shift{
		ID:        uuid.New(),
		Code:      req.Code,
		Name:      req.Name,
		StartTime: start,
		EndTime:   end,
		Enabled:   true,
	}
	if req.Enabled != nil {
		entity.Enabled = *req.Enabled
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, entity); err != nil {
		s.logger.Error("create shift persist failed", zap.Error(err))
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("shift created", zap.String("shift_id", entity.ID.String()), zap.String("code", entity.Code))
	return mapToResponse(*entity), nil
}

func (s *service) GetAll(ctx context.Context) ([]ShiftResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make([]ShiftResponse, len(rows))
	for i, row := range rows {
		out[i] = mapToResponse(row)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ShiftResponse, error) {
	shiftID, err := uuid.Parse(id)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftID
	}
	row, err := s.repo.FindByID(ctx, shiftID)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	shiftID, err := uuid.Parse(id)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftID
	}
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByID(ctx, shiftID)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}

	row.Name = req.Name
	row.StartTime = start
	row.EndTime = end
	if req.Enabled != nil {
		row.Enabled = *req.Enabled
	}

	if err := qtx.Update(ctx, row); err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	shiftID, err := uuid.Parse(id)
	if err != nil {
		return shifterrors.ErrInvalidShiftID
	}
	if _, err := s.repo.FindByID(ctx, shiftID); err != nil {
		return mapRepositoryError(err)
	}
	return mapRepositoryError(s.repo.Delete(ctx, shiftID))
}

func parseWindow(startRaw, endRaw string) (domain.TimeOfDay, domain.TimeOfDay, error) {
	start, err := domain.ParseTimeOfDay(startRaw)
	if err != nil {
		return 0, 0, shifterrors.ErrInvalidShiftWindow
	}
	end, err := domain.ParseTimeOfDay(endRaw)
	if err != nil {
		return 0, 0, shifterrors.ErrInvalidShiftWindow
	}
	if !start.Before(end) {
		return 0, 0, shifterrors.ErrInvalidShiftWindow
	}
	return start, end, nil
}

func mapToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID.String(),
		Code:      s.Code,
		Name:      s.Name,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Enabled:   s.Enabled,
	}
}
