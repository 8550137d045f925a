package rule

import (
	"context"
	"testing"
	"time"

	ruleerrors "go-workforce/internal/rule/errors"
	"go-workforce/internal/shared/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingCache struct {
	cache.Noop
	invalidated []string
}

func (c *recordingCache) Invalidate(ctx context.Context, keys ...string) error {
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

func validCreateRequest() CreateRuleRequest {
	return CreateRuleRequest{
		RuleName:      "standard office hours",
		Scope:         ScopeGlobal,
		Priority:      1,
		WorkStartTime: "09:00",
		WorkEndTime:   "18:00",
		WorkSchedule:  []int{1, 2, 3, 4, 5},
	}
}

func TestCreateRulePersistsAndBumpsEpoch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var created *AttendanceRule
	repo := &fakeRuleRepo{}
	repo.createFn = func(ctx context.Context, r *AttendanceRule) error {
		created = r
		return nil
	}
	rc := &recordingCache{}

	svc := NewService(db, repo, nil, rc)
	resp, err := svc.Create(context.Background(), validCreateRequest())

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, ScopeGlobal, created.Scope)
	assert.True(t, created.Enabled)
	assert.Equal(t, "09:00", resp.WorkStartTime)
	assert.Contains(t, rc.invalidated, cache.RuleEpochKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRuleRejectsInvertedWorkWindow(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	req := validCreateRequest()
	req.WorkStartTime = "18:00"
	req.WorkEndTime = "09:00"

	svc := NewService(db, &fakeRuleRepo{}, nil, cache.Noop{})
	_, err = svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ruleerrors.ErrInvalidWorkWindow)
}

func TestCreateRuleRejectsBreakOutsideWorkWindow(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	bs, be := "08:00", "12:30"
	req := validCreateRequest()
	req.BreakStartTime = &bs
	req.BreakEndTime = &be

	svc := NewService(db, &fakeRuleRepo{}, nil, cache.Noop{})
	_, err = svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ruleerrors.ErrInvalidBreakWindow)
}

func TestCreateIndividualRuleRequiresEmployee(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	req := validCreateRequest()
	req.Scope = ScopeIndividual

	svc := NewService(db, &fakeRuleRepo{}, nil, cache.Noop{})
	_, err = svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ruleerrors.ErrScopeTargetMissing)
}

func TestCreateRuleRejectsInvertedEffectiveWindow(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	from, to := "2026-02-01", "2026-01-01"
	req := validCreateRequest()
	req.EffectiveFrom = &from
	req.EffectiveTo = &to

	svc := NewService(db, &fakeRuleRepo{}, nil, cache.Noop{})
	_, err = svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ruleerrors.ErrInvalidEffectiveWindow)
}

func TestDeleteRuleBumpsEpoch(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	repo := &fakeRuleRepo{}
	repo.findByIDFn = func(ctx context.Context, got uuid.UUID) (*AttendanceRule, error) {
		rule := namedRule("doomed", ScopeGlobal, 1)
		rule.ID = got
		return &rule, nil
	}
	repo.deleteFn = func(ctx context.Context, got uuid.UUID) error {
		assert.Equal(t, id, got)
		return nil
	}
	rc := &recordingCache{}

	svc := NewService(db, repo, nil, rc)
	err = svc.Delete(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Contains(t, rc.invalidated, cache.RuleEpochKey)
}

func TestResolveForEmployeeFlagsDefault(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeRuleRepo{}
	resolver := NewResolver(repo, &fakeDirectory{}, cache.Noop{})

	svc := NewService(db, repo, resolver, cache.Noop{})
	resp, err := svc.ResolveForEmployee(context.Background(), uuid.NewString(), time.Now())

	assert.NoError(t, err)
	assert.True(t, resp.IsDefault)
}
