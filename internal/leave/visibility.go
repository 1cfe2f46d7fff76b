package leave

import (
	"context"
	"time"

	"go-leaveflow/internal/domain"
	leaveerrors "go-leaveflow/internal/leave/errors"
)

// ListPendingApprovals is the visibility filter. The repository
// returns the level and hierarchy scoped candidates; the manager
// narrowing reuses the effective-approver resolver so the listing can
// never disagree with the single-employee lookup.
func (s *service) ListPendingApprovals(ctx context.Context, reviewerID string, role domain.Role, hierarchyID string) ([]PendingApprovalSummary, error) {
	level, ok := domain.LevelForRole(role)
	if !ok {
		return nil, leaveerrors.ErrNotEntitled
	}

	scope := ""
	if level == domain.LevelManager || level == domain.LevelDirector {
		if hierarchyID == "" {
			return nil, leaveerrors.ErrNotEntitled.WithDetails("reviewer has no hierarchy")
		}
		scope = hierarchyID
	}

	rows, err := s.repo.FindPendingApprovalsByLevel(ctx, level, scope)
	if err != nil {
		return nil, err
	}

	summaries := make([]PendingApprovalSummary, 0, len(rows))
	for _, row := range rows {
		if row.EmployeeID == reviewerID {
			continue
		}
		if level == domain.LevelManager {
			visible, err := s.managerMayAct(ctx, reviewerID, row.HierarchyID, row.EmployeeID, row.StartDate, row.EndDate)
			if err != nil {
				return nil, err
			}
			if !visible {
				continue
			}
		}
		summaries = append(summaries, PendingApprovalSummary{
			ApprovalID:  row.ApprovalID,
			RequestID:   row.RequestID,
			Reference:   row.Reference,
			EmployeeID:  row.EmployeeID,
			HierarchyID: row.HierarchyID,
			LeaveTypeID: row.LeaveTypeID,
			Level:       row.Level.String(),
			StepOrder:   row.StepOrder,
			StartDate:   row.StartDate.Format("2006-01-02"),
			EndDate:     row.EndDate.Format("2006-01-02"),
			HalfDay:     row.HalfDay,
			FlowMode:    row.FlowMode.String(),
		})
	}
	return summaries, nil
}

// managerMayAct applies the assignment and delegation rules for one
// candidate. Unassigned employees are open to every manager.
func (s *service) managerMayAct(ctx context.Context, reviewerID, hierarchyID, employeeID string, start, end time.Time) (bool, error) {
	effective, assigned, err := s.resolver.Resolve(ctx, hierarchyID, employeeID, start, end)
	if err != nil {
		return false, err
	}
	if !assigned {
		return true, nil
	}
	return effective.String() == reviewerID, nil
}
