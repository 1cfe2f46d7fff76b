package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/user"
)

type fakeResolver struct {
	managerID uuid.UUID
	assigned  bool
	err       error
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ string, _, _ time.Time) (uuid.UUID, bool, error) {
	return f.managerID, f.assigned, f.err
}

type fakeDirectory struct {
	byHierarchy map[domain.Role][]user.User
	global      map[domain.Role][]user.User
}

func (f *fakeDirectory) FindActiveByRoleInHierarchy(_ context.Context, _ string, role domain.Role) ([]user.User, error) {
	return f.byHierarchy[role], nil
}

func (f *fakeDirectory) FindActiveGlobalByRole(_ context.Context, role domain.Role) ([]user.User, error) {
	return f.global[role], nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func planInput(role domain.Role, levels []domain.ApprovalLevel, mode domain.FlowMode, requireDirector bool) leave.PlanInput {
	return leave.PlanInput{
		HierarchyID:     uuid.New(),
		EmployeeID:      uuid.New(),
		EmployeeRole:    role,
		PolicyLevels:    levels,
		FlowMode:        mode,
		RequireDirector: requireDirector,
		PeriodStart:     day("2026-03-02"),
		PeriodEnd:       day("2026-03-06"),
	}
}

func TestPlanner_SerialChain(t *testing.T) {
	managerID := uuid.New()
	hrID := uuid.New()
	directory := &fakeDirectory{
		byHierarchy: map[domain.Role][]user.User{
			domain.RoleHR: {{ID: hrID}},
		},
	}
	planner := leave.NewPlanner(&fakeResolver{managerID: managerID, assigned: true}, directory)

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee,
		[]domain.ApprovalLevel{domain.LevelManager, domain.LevelHR},
		domain.FlowSerial,
		false,
	))

	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, domain.LevelManager, plan[0].Level)
	assert.Equal(t, 1, plan[0].StepOrder)
	assert.Equal(t, domain.ApprovalPending, plan[0].Status)
	require.NotNil(t, plan[0].ApproverID)
	assert.Equal(t, managerID, *plan[0].ApproverID)

	assert.Equal(t, domain.LevelHR, plan[1].Level)
	assert.Equal(t, 2, plan[1].StepOrder)
	assert.Equal(t, domain.ApprovalBlocked, plan[1].Status)
	require.NotNil(t, plan[1].ApproverID)
	assert.Equal(t, hrID, *plan[1].ApproverID)
}

func TestPlanner_ParallelChain(t *testing.T) {
	directory := &fakeDirectory{
		byHierarchy: map[domain.Role][]user.User{
			domain.RoleHR: {{ID: uuid.New()}},
		},
	}
	planner := leave.NewPlanner(&fakeResolver{managerID: uuid.New(), assigned: true}, directory)

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee,
		[]domain.ApprovalLevel{domain.LevelManager, domain.LevelHR},
		domain.FlowParallel,
		false,
	))

	require.NoError(t, err)
	require.Len(t, plan, 2)
	for _, step := range plan {
		assert.Equal(t, 1, step.StepOrder)
		assert.Equal(t, domain.ApprovalPending, step.Status)
	}
}

func TestPlanner_ManagerOwnLeaveEscalatesToDirector(t *testing.T) {
	directorID := uuid.New()
	directory := &fakeDirectory{
		byHierarchy: map[domain.Role][]user.User{
			domain.RoleDirector: {{ID: directorID}},
		},
	}
	planner := leave.NewPlanner(&fakeResolver{}, directory)

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleManager,
		[]domain.ApprovalLevel{domain.LevelManager, domain.LevelHR},
		domain.FlowSerial,
		false,
	))

	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, domain.LevelDirector, plan[0].Level)
	assert.Equal(t, domain.ApprovalPending, plan[0].Status)
	require.NotNil(t, plan[0].ApproverID)
	assert.Equal(t, directorID, *plan[0].ApproverID)
}

func TestPlanner_DirectorOverrideInsertsAfterManager(t *testing.T) {
	directory := &fakeDirectory{
		byHierarchy: map[domain.Role][]user.User{
			domain.RoleDirector: {{ID: uuid.New()}},
			domain.RoleHR:       {{ID: uuid.New()}},
		},
	}
	planner := leave.NewPlanner(&fakeResolver{managerID: uuid.New(), assigned: true}, directory)

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee,
		[]domain.ApprovalLevel{domain.LevelManager, domain.LevelHR},
		domain.FlowSerial,
		true,
	))

	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, domain.LevelManager, plan[0].Level)
	assert.Equal(t, domain.LevelDirector, plan[1].Level)
	assert.Equal(t, domain.LevelHR, plan[2].Level)

	// Already-present Director steps are not duplicated.
	plan, err = planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee,
		[]domain.ApprovalLevel{domain.LevelManager, domain.LevelDirector, domain.LevelHR},
		domain.FlowSerial,
		true,
	))
	require.NoError(t, err)
	assert.Len(t, plan, 3)
}

func TestPlanner_UnassignedManagerLeavesStepOpen(t *testing.T) {
	directory := &fakeDirectory{}
	planner := leave.NewPlanner(&fakeResolver{assigned: false}, directory)

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee,
		[]domain.ApprovalLevel{domain.LevelManager},
		domain.FlowSerial,
		false,
	))

	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Nil(t, plan[0].ApproverID)
	assert.Equal(t, domain.ApprovalPending, plan[0].Status)
}

func TestPlanner_HRFallsBackToGlobal(t *testing.T) {
	globalHR := uuid.New()
	directory := &fakeDirectory{
		global: map[domain.Role][]user.User{
			domain.RoleHR: {{ID: globalHR}},
		},
	}
	planner := leave.NewPlanner(&fakeResolver{}, directory)

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee,
		[]domain.ApprovalLevel{domain.LevelHR},
		domain.FlowSerial,
		false,
	))

	require.NoError(t, err)
	require.Len(t, plan, 1)
	require.NotNil(t, plan[0].ApproverID)
	assert.Equal(t, globalHR, *plan[0].ApproverID)
}

func TestPlanner_EmptyPolicyYieldsNoPlan(t *testing.T) {
	planner := leave.NewPlanner(&fakeResolver{}, &fakeDirectory{})

	plan, err := planner.BuildPlan(context.Background(), planInput(
		domain.RoleEmployee, nil, domain.FlowSerial, false,
	))

	require.NoError(t, err)
	assert.Empty(t, plan)
}
