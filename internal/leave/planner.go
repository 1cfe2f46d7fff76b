package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-leaveflow/internal/assignment"
	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/user"
)

// ApproverDirectory is the slice of the user store the planner needs
// for per-level approver lookups. Results come back ordered by last
// name then first name, which is the deterministic tie-break.
type ApproverDirectory interface {
	FindActiveByRoleInHierarchy(ctx context.Context, hierarchyID string, role domain.Role) ([]user.User, error)
	FindActiveGlobalByRole(ctx context.Context, role domain.Role) ([]user.User, error)
}

// PlanInput carries everything BuildPlan needs about one submission.
type PlanInput struct {
	HierarchyID     uuid.UUID
	EmployeeID      uuid.UUID
	EmployeeRole    domain.Role
	PolicyLevels    []domain.ApprovalLevel
	FlowMode        domain.FlowMode
	RequireDirector bool
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// PlannedApproval is one row of the plan, ready to persist.
type PlannedApproval struct {
	Level      domain.ApprovalLevel
	StepOrder  int
	Status     domain.ApprovalStatus
	ApproverID *uuid.UUID
}

//go:generate mockgen -source=planner.go -destination=mock/planner_mock.go -package=mock
type Planner interface {
	// BuildPlan produces the ordered approval sequence for a request.
	// An empty plan means the request auto-approves.
	BuildPlan(ctx context.Context, in PlanInput) ([]PlannedApproval, error)
}

type planner struct {
	resolver  assignment.Resolver
	directory ApproverDirectory
	logger    *zap.Logger
}

func NewPlanner(resolver assignment.Resolver, directory ApproverDirectory, logger ...*zap.Logger) Planner {
	l := zap.L().Named("leave.planner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.planner")
	}
	return &planner{resolver: resolver, directory: directory, logger: l}
}

func (p *planner) BuildPlan(ctx context.Context, in PlanInput) ([]PlannedApproval, error) {
	levels := p.levelSequence(in)
	if len(levels) == 0 {
		return nil, nil
	}

	plan := make([]PlannedApproval, 0, len(levels))
	for i, level := range levels {
		approverID, err := p.resolveApprover(ctx, in, level)
		if err != nil {
			return nil, err
		}
		if approverID == nil {
			// Not fatal: the step is created unbound and must be
			// assigned manually later.
			p.logger.Warn("no approver available for level",
				zap.String("hierarchy_id", in.HierarchyID.String()),
				zap.String("level", level.String()),
			)
		}

		order := i + 1
		status := domain.ApprovalBlocked
		if in.FlowMode == domain.FlowParallel {
			order = 1
			status = domain.ApprovalPending
		} else if i == 0 {
			status = domain.ApprovalPending
		}

		plan = append(plan, PlannedApproval{
			Level:      level,
			StepOrder:  order,
			Status:     status,
			ApproverID: approverID,
		})
	}
	return plan, nil
}

// levelSequence applies the policy flags, the blackout Director
// override, and the manager-self escalation rule.
func (p *planner) levelSequence(in PlanInput) []domain.ApprovalLevel {
	// A manager's own leave bypasses peer-manager approval entirely
	// and escalates straight to a Director.
	if in.EmployeeRole == domain.RoleManager {
		return []domain.ApprovalLevel{domain.LevelDirector}
	}

	levels := make([]domain.ApprovalLevel, len(in.PolicyLevels))
	copy(levels, in.PolicyLevels)

	if in.RequireDirector && !containsLevel(levels, domain.LevelDirector) {
		levels = insertDirectorAfterManager(levels)
	}
	return levels
}

func (p *planner) resolveApprover(ctx context.Context, in PlanInput, level domain.ApprovalLevel) (*uuid.UUID, error) {
	switch level {
	case domain.LevelManager:
		// Assignment and delegation decide; an unassigned employee
		// leaves the step open to every manager in the hierarchy.
		managerID, ok, err := p.resolver.Resolve(ctx, in.HierarchyID.String(), in.EmployeeID.String(), in.PeriodStart, in.PeriodEnd)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &managerID, nil

	case domain.LevelDirector:
		return p.firstInHierarchy(ctx, in.HierarchyID.String(), domain.RoleDirector)

	case domain.LevelHR:
		approver, err := p.firstInHierarchy(ctx, in.HierarchyID.String(), domain.RoleHR)
		if err != nil || approver != nil {
			return approver, err
		}
		// No HR user in the hierarchy: fall back to a global one.
		globals, err := p.directory.FindActiveGlobalByRole(ctx, domain.RoleHR)
		if err != nil {
			return nil, err
		}
		if len(globals) == 0 {
			return nil, nil
		}
		return &globals[0].ID, nil
	}
	return nil, nil
}

func (p *planner) firstInHierarchy(ctx context.Context, hierarchyID string, role domain.Role) (*uuid.UUID, error) {
	users, err := p.directory.FindActiveByRoleInHierarchy(ctx, hierarchyID, role)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0].ID, nil
}

func containsLevel(levels []domain.ApprovalLevel, level domain.ApprovalLevel) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

// insertDirectorAfterManager places Director right after Manager, or
// at the head when the sequence has no Manager step.
func insertDirectorAfterManager(levels []domain.ApprovalLevel) []domain.ApprovalLevel {
	for i, l := range levels {
		if l == domain.LevelManager {
			out := make([]domain.ApprovalLevel, 0, len(levels)+1)
			out = append(out, levels[:i+1]...)
			out = append(out, domain.LevelDirector)
			out = append(out, levels[i+1:]...)
			return out
		}
	}
	return append([]domain.ApprovalLevel{domain.LevelDirector}, levels...)
}
