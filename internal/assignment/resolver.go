package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resolver answers the question "who is the manager for this employee
// and this period right now". Read-only; shared by submission-time
// access checks and the pending-approval listing.
//
//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	// Resolve returns the effective manager for the employee and
	// period. ok is false when the employee has no active assignment,
	// which means the request is open to every manager in the
	// hierarchy.
	Resolve(ctx context.Context, hierarchyID, employeeID string, periodStart, periodEnd time.Time) (managerID uuid.UUID, ok bool, err error)
}

type resolver struct {
	repo Repository
}

func NewResolver(repo Repository) Resolver {
	return &resolver{repo: repo}
}

func (r *resolver) Resolve(ctx context.Context, hierarchyID, employeeID string, periodStart, periodEnd time.Time) (uuid.UUID, bool, error) {
	a, err := r.repo.FindActiveAssignment(ctx, hierarchyID, employeeID)
	if err != nil {
		return uuid.Nil, false, err
	}
	if a == nil {
		return uuid.Nil, false, nil
	}

	// A delegation only displaces the assigned manager when its
	// interval covers the whole requested period.
	d, err := r.repo.FindActiveDelegationCovering(ctx, hierarchyID, a.ManagerID.String(), periodStart, periodEnd)
	if err != nil {
		return uuid.Nil, false, err
	}
	if d != nil {
		return d.DelegateID, true, nil
	}

	return a.ManagerID, true, nil
}
