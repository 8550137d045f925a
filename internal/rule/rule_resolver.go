package rule

import (
	"context"
	"encoding/json"
	"time"

	"go-workforce/internal/employee"
	"go-workforce/internal/shared/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver answers "which attendance rule governs this employee on this
// date". Resolution walks three tiers: individual rules, then rules for the
// employee's department, then global rules. Within a tier the highest
// priority wins; ties go to the newest rule. When no tier yields a rule the
// built-in default applies and the degraded state is logged.
type Resolver interface {
	Resolve(ctx context.Context, employeeID uuid.UUID, date time.Time) (AttendanceRule, error)
}

type resolver struct {
	repo      Repository
	directory employee.Directory
	cache     cache.Cache
	group     singleflight.Group
	logger    *zap.Logger
}

func NewResolver(repo Repository, directory employee.Directory, c cache.Cache) Resolver {
	return &resolver{
		repo:      repo,
		directory: directory,
		cache:     c,
		logger:    zap.L().Named("rule.resolver"),
	}
}

func (r *resolver) Resolve(ctx context.Context, employeeID uuid.UUID, date time.Time) (AttendanceRule, error) {
	day := date.Format("2006-01-02")
	key, err := r.cacheKey(ctx, employeeID.String(), day)
	if err == nil {
		if raw, ok, cerr := r.cache.Get(ctx, key); cerr == nil && ok {
			var cached AttendanceRule
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := r.group.Do(employeeID.String()+":"+day, func() (interface{}, error) {
		return r.resolveUncached(ctx, employeeID, date)
	})
	if err != nil {
		return AttendanceRule{}, err
	}
	resolved := v.(AttendanceRule)

	if key != "" {
		if raw, jerr := json.Marshal(resolved); jerr == nil {
			if cerr := r.cache.Set(ctx, key, string(raw), cache.DefaultTTL); cerr != nil {
				r.logger.Warn("failed to cache resolved rule", zap.Error(cerr))
			}
		}
	}
	return resolved, nil
}

// cacheKey embeds the current rule epoch so that any rule write, which
// bumps the epoch, orphans every previously resolved entry at once.
func (r *resolver) cacheKey(ctx context.Context, employeeID, day string) (string, error) {
	epoch, ok, err := r.cache.Get(ctx, cache.RuleEpochKey)
	if err != nil {
		return "", err
	}
	if !ok {
		epoch = uuid.NewString()
		if err := r.cache.Set(ctx, cache.RuleEpochKey, epoch, 0); err != nil {
			return "", err
		}
	}
	return cache.ResolvedRuleKey(epoch, employeeID, day), nil
}

func (r *resolver) resolveUncached(ctx context.Context, employeeID uuid.UUID, date time.Time) (AttendanceRule, error) {
	individual, err := r.repo.FindIndividualRules(ctx, employeeID, date)
	if err != nil {
		return AttendanceRule{}, err
	}
	if len(individual) > 0 {
		return individual[0], nil
	}

	departmentID, err := r.directory.DepartmentID(ctx, employeeID.String())
	if err != nil {
		return AttendanceRule{}, err
	}
	if departmentID != "" {
		deptID, perr := uuid.Parse(departmentID)
		if perr == nil {
			departmental, derr := r.repo.FindDepartmentRules(ctx, deptID, date)
			if derr != nil {
				return AttendanceRule{}, derr
			}
			if len(departmental) > 0 {
				return departmental[0], nil
			}
		}
	}

	global, err := r.repo.FindGlobalRules(ctx, date)
	if err != nil {
		return AttendanceRule{}, err
	}
	if len(global) > 0 {
		return global[0], nil
	}

	r.logger.Warn("no attendance rule configured, using built-in default",
		zap.String("employee_id", employeeID.String()),
		zap.String("date", date.Format("2006-01-02")))
	return DefaultRule(), nil
}
