package rule

import (
	"context"
	"database/sql"
	"time"

	"go-workforce/internal/domain"
	employeeerrors "go-workforce/internal/employee/errors"
	ruleerrors "go-workforce/internal/rule/errors"
	"go-workforce/internal/shared/cache"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rule_service.go -destination=mocks/rule_service_mock.go -package=mocks
type Service interface {
	Create(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	GetAll(ctx context.Context) ([]RuleResponse, error)
	GetByID(ctx context.Context, id string) (RuleResponse, error)
	Update(ctx context.Context, id string, req UpdateRuleRequest) (RuleResponse, error)
	Delete(ctx context.Context, id string) error
	ResolveForEmployee(ctx context.Context, employeeID string, date time.Time) (ResolvedRuleResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver Resolver
	cache    cache.Cache
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver Resolver, c cache.Cache) Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		cache:    c,
		logger:   zap.L().Named("rule.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRuleRequest) (RuleResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	entity, err := entityFromCreate(req)
	if err != nil {
		return RuleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, entity); err != nil {
		s.logger.Error("create rule persist failed", zap.String("request_id", rid), zap.Error(err))
		return RuleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return RuleResponse{}, err
	}

	s.bumpEpoch(ctx)
	s.logger.Info("attendance rule created",
		zap.String("request_id", rid),
		zap.String("rule_id", entity.ID.String()),
		zap.String("scope", entity.Scope),
	)
	return mapToResponse(*entity), nil
}

func (s *service) GetAll(ctx context.Context) ([]RuleResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make([]RuleResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RuleResponse, error) {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return RuleResponse{}, ruleerrors.ErrInvalidRuleID
	}
	row, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return RuleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRuleRequest) (RuleResponse, error) {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return RuleResponse{}, ruleerrors.ErrInvalidRuleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByID(ctx, ruleID)
	if err != nil {
		return RuleResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(row, req); err != nil {
		return RuleResponse{}, err
	}
	if err := qtx.Update(ctx, row); err != nil {
		return RuleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return RuleResponse{}, err
	}

	s.bumpEpoch(ctx)
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return ruleerrors.ErrInvalidRuleID
	}
	if _, err := s.repo.FindByID(ctx, ruleID); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, ruleID); err != nil {
		return mapRepositoryError(err)
	}
	s.bumpEpoch(ctx)
	return nil
}

func (s *service) ResolveForEmployee(ctx context.Context, employeeID string, date time.Time) (ResolvedRuleResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return ResolvedRuleResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	resolved, err := s.resolver.Resolve(ctx, id, date)
	if err != nil {
		return ResolvedRuleResponse{}, err
	}
	return ResolvedRuleResponse{
		Rule:      mapToResponse(resolved),
		IsDefault: resolved.IsDefault(),
	}, nil
}

// bumpEpoch invalidates the rule epoch after any write so every previously
// resolved rule entry is orphaned.
func (s *service) bumpEpoch(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.RuleEpochKey); err != nil {
		s.logger.Error("invalidate rule epoch failed", zap.Error(err))
	}
}

func entityFromCreate(req CreateRuleRequest) (*AttendanceRule, error) {
	entity := &AttendanceRule{
		ID:       uuid.New(),
		RuleName: req.RuleName,
		Scope:    req.Scope,
		Priority: req.Priority,
		Enabled:  true,
	}
	if req.Enabled != nil {
		entity.Enabled = *req.Enabled
	}

	switch req.Scope {
	case ScopeIndividual:
		if req.EmployeeID == nil {
			return nil, ruleerrors.ErrScopeTargetMissing
		}
		id, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return nil, ruleerrors.ErrScopeTargetMissing
		}
		entity.EmployeeID = &id
	case ScopeDepartment:
		if req.DepartmentID == nil {
			return nil, ruleerrors.ErrScopeTargetMissing
		}
		id, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return nil, ruleerrors.ErrScopeTargetMissing
		}
		entity.DepartmentID = &id
	case ScopeGlobal:
	default:
		return nil, ruleerrors.ErrInvalidScope
	}

	if err := applyTimes(entity, req.WorkStartTime, req.WorkEndTime, req.BreakStartTime, req.BreakEndTime); err != nil {
		return nil, err
	}
	if err := applyWindows(entity, req.HolidayRules, req.WorkSchedule, req.EffectiveFrom, req.EffectiveTo); err != nil {
		return nil, err
	}
	return entity, nil
}

func applyUpdate(entity *AttendanceRule, req UpdateRuleRequest) error {
	entity.RuleName = req.RuleName
	entity.Priority = req.Priority
	if req.Enabled != nil {
		entity.Enabled = *req.Enabled
	}
	if err := applyTimes(entity, req.WorkStartTime, req.WorkEndTime, req.BreakStartTime, req.BreakEndTime); err != nil {
		return err
	}
	return applyWindows(entity, req.HolidayRules, req.WorkSchedule, req.EffectiveFrom, req.EffectiveTo)
}

func applyTimes(entity *AttendanceRule, workStart, workEnd string, breakStart, breakEnd *string) error {
	ws, err := domain.ParseTimeOfDay(workStart)
	if err != nil {
		return ruleerrors.ErrInvalidWorkWindow
	}
	we, err := domain.ParseTimeOfDay(workEnd)
	if err != nil {
		return ruleerrors.ErrInvalidWorkWindow
	}
	if !ws.Before(we) {
		return ruleerrors.ErrInvalidWorkWindow
	}
	entity.WorkStartTime = ws
	entity.WorkEndTime = we

	entity.BreakStartTime = nil
	entity.BreakEndTime = nil
	if breakStart != nil || breakEnd != nil {
		if breakStart == nil || breakEnd == nil {
			return ruleerrors.ErrInvalidBreakWindow
		}
		bs, err := domain.ParseTimeOfDay(*breakStart)
		if err != nil {
			return ruleerrors.ErrInvalidBreakWindow
		}
		be, err := domain.ParseTimeOfDay(*breakEnd)
		if err != nil {
			return ruleerrors.ErrInvalidBreakWindow
		}
		if !bs.Before(be) || bs.Before(ws) || be.After(we) {
			return ruleerrors.ErrInvalidBreakWindow
		}
		entity.BreakStartTime = &bs
		entity.BreakEndTime = &be
	}
	return nil
}

func applyWindows(entity *AttendanceRule, holidays []string, workdays []int, from, to *string) error {
	entity.HolidayRules = domain.NewDateSet(holidays...)
	entity.WorkSchedule = domain.NewWeekdaySet(workdays...)

	entity.EffectiveFrom = nil
	entity.EffectiveTo = nil
	if from != nil {
		t, err := time.Parse(domain.ISODate, *from)
		if err != nil {
			return ruleerrors.ErrInvalidEffectiveWindow
		}
		entity.EffectiveFrom = &t
	}
	if to != nil {
		t, err := time.Parse(domain.ISODate, *to)
		if err != nil {
			return ruleerrors.ErrInvalidEffectiveWindow
		}
		entity.EffectiveTo = &t
	}
	if entity.EffectiveFrom != nil && entity.EffectiveTo != nil && entity.EffectiveFrom.After(*entity.EffectiveTo) {
		return ruleerrors.ErrInvalidEffectiveWindow
	}
	return nil
}

func mapToResponse(r AttendanceRule) RuleResponse {
	resp := RuleResponse{
		ID:            r.ID.String(),
		RuleName:      r.RuleName,
		Scope:         r.Scope,
		Priority:      r.Priority,
		Enabled:       r.Enabled,
		WorkStartTime: r.WorkStartTime.String(),
		WorkEndTime:   r.WorkEndTime.String(),
		HolidayRules:  r.HolidayRules.Dates(),
		WorkSchedule:  r.WorkSchedule.Days(),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.EmployeeID != nil {
		v := r.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if r.DepartmentID != nil {
		v := r.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if r.BreakStartTime != nil {
		v := r.BreakStartTime.String()
		resp.BreakStartTime = &v
	}
	if r.BreakEndTime != nil {
		v := r.BreakEndTime.String()
		resp.BreakEndTime = &v
	}
	if r.EffectiveFrom != nil {
		v := r.EffectiveFrom.Format(domain.ISODate)
		resp.EffectiveFrom = &v
	}
	if r.EffectiveTo != nil {
		v := r.EffectiveTo.Format(domain.ISODate)
		resp.EffectiveTo = &v
	}
	return resp
}
