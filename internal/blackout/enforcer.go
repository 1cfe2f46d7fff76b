package blackout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// Evaluation is the enforcer's verdict on a submission window.
// Blocking, when non-nil, names the period that forbids submission
// outright. RequireDirector forces a Director step into the approval
// plan even when the leave type's policy has none. Warnings carry the
// WARN-mode matches so callers can surface them; they never block.
type Evaluation struct {
	Blocking        *BlackoutPeriod
	RequireDirector bool
	Warnings        []BlackoutPeriod
}

//go:generate mockgen -source=enforcer.go -destination=mock/enforcer_mock.go -package=mock
type Enforcer interface {
	Evaluate(ctx context.Context, employeeID, leaveTypeID uuid.UUID, start, end time.Time) (Evaluation, error)
}

type enforcer struct {
	repo Repository
}

func NewEnforcer(repo Repository) Enforcer {
	return &enforcer{repo: repo}
}

// Evaluate inspects every active period overlapping [start, end].
// A BLOCK match wins over everything else regardless of ordering.
func (e *enforcer) Evaluate(ctx context.Context, employeeID, leaveTypeID uuid.UUID, start, end time.Time) (Evaluation, error) {
	periods, err := e.repo.FindActiveOverlapping(ctx, start, end)
	if err != nil {
		return Evaluation{}, err
	}

	var result Evaluation
	for i := range periods {
		p := periods[i]
		if !p.Matches(employeeID, leaveTypeID) {
			continue
		}
		switch p.EnforceMode {
		case domain.EnforceBlock:
			if result.Blocking == nil {
				result.Blocking = &periods[i]
			}
		case domain.EnforceRequireDirector:
			result.RequireDirector = true
		case domain.EnforceWarn:
			result.Warnings = append(result.Warnings, p)
		}
	}
	return result, nil
}
