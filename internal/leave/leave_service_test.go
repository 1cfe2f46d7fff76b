package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leaveflow/internal/blackout"
	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/leave"
	leaveerrors "go-leaveflow/internal/leave/errors"
	"go-leaveflow/internal/leavetype"
	"go-leaveflow/internal/user"
)

type fakeLeaveRepository struct {
	requests    map[string]*leave.LeaveRequest
	approvals   map[string][]leave.Approval
	overlap     bool
	pendingRows []leave.PendingApprovalRow

	createdRequests  int
	createdApprovals int
	unlockedSteps    []int
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{
		requests:  map[string]*leave.LeaveRequest{},
		approvals: map[string][]leave.Approval{},
	}
}

func (f *fakeLeaveRepository) WithTx(_ *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) CreateRequest(_ context.Context, r *leave.LeaveRequest) error {
	f.createdRequests++
	f.requests[r.ID.String()] = r
	return nil
}

func (f *fakeLeaveRepository) FindRequestByID(_ context.Context, id string) (*leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeLeaveRepository) FindRequestWithApprovals(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	r, err := f.FindRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	copied := *r
	copied.Approvals = f.approvals[id]
	return &copied, nil
}

func (f *fakeLeaveRepository) UpdateRequestStatus(_ context.Context, id string, status domain.RequestStatus, stage string) error {
	r := f.requests[id]
	r.Status = status
	r.CurrentStage = stage
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingActiveRequest(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return f.overlap, nil
}

func (f *fakeLeaveRepository) ListRequestsByEmployee(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListRequestsByHierarchy(_ context.Context, hierarchyID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.HierarchyID.String() == hierarchyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) CreateApprovals(_ context.Context, approvals []leave.Approval) error {
	f.createdApprovals += len(approvals)
	for _, a := range approvals {
		f.approvals[a.RequestID.String()] = append(f.approvals[a.RequestID.String()], a)
	}
	return nil
}

func (f *fakeLeaveRepository) FindApprovalForUpdate(_ context.Context, id string) (*leave.Approval, error) {
	for rid := range f.approvals {
		for i := range f.approvals[rid] {
			if f.approvals[rid][i].ID.String() == id {
				return &f.approvals[rid][i], nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLeaveRepository) FindApprovalsByRequest(_ context.Context, requestID string) ([]leave.Approval, error) {
	return f.approvals[requestID], nil
}

func (f *fakeLeaveRepository) FindPendingApprovalsByLevel(_ context.Context, level domain.ApprovalLevel, hierarchyID string) ([]leave.PendingApprovalRow, error) {
	var out []leave.PendingApprovalRow
	for _, row := range f.pendingRows {
		if row.Level != level {
			continue
		}
		if hierarchyID != "" && row.HierarchyID != hierarchyID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeLeaveRepository) UpdateApproval(_ context.Context, a *leave.Approval) error {
	for rid := range f.approvals {
		for i := range f.approvals[rid] {
			if f.approvals[rid][i].ID == a.ID {
				f.approvals[rid][i] = *a
			}
		}
	}
	return nil
}

func (f *fakeLeaveRepository) UnlockNextApproval(_ context.Context, requestID string, stepOrder int) error {
	f.unlockedSteps = append(f.unlockedSteps, stepOrder)
	for i := range f.approvals[requestID] {
		a := &f.approvals[requestID][i]
		if a.StepOrder == stepOrder && a.Status == domain.ApprovalBlocked {
			a.Status = domain.ApprovalPending
		}
	}
	return nil
}

type fakeLeaveTypeStore struct {
	leaveType *leavetype.LeaveType
}

func (f *fakeLeaveTypeStore) FindByID(_ context.Context, _ string) (*leavetype.LeaveType, error) {
	return f.leaveType, nil
}

type fakeEmployeeDirectory struct {
	users map[string]*user.User
}

func (f *fakeEmployeeDirectory) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

type fakeEnforcer struct {
	evaluation blackout.Evaluation
}

func (f *fakeEnforcer) Evaluate(_ context.Context, _, _ uuid.UUID, _, _ time.Time) (blackout.Evaluation, error) {
	return f.evaluation, nil
}

type fakePlanner struct {
	plan []leave.PlannedApproval
}

func (f *fakePlanner) BuildPlan(_ context.Context, _ leave.PlanInput) ([]leave.PlannedApproval, error) {
	return f.plan, nil
}

type fakeLedger struct {
	sufficient   bool
	debitCalls   int
	debitedQty   decimal.Decimal
	debitRequest uuid.UUID
}

func (f *fakeLedger) DebitForApproval(_ context.Context, _ *sql.Tx, _, _, requestID uuid.UUID, quantity decimal.Decimal) error {
	f.debitCalls++
	f.debitedQty = quantity
	f.debitRequest = requestID
	return nil
}

func (f *fakeLedger) HasSufficient(_ context.Context, _, _ uuid.UUID, _ decimal.Decimal) (bool, error) {
	return f.sufficient, nil
}

type fakeCounter struct {
	next map[string]int64
}

func (f *fakeCounter) GetNextValue(_ context.Context, hierarchyID string, _ string) (int64, error) {
	if f.next == nil {
		f.next = map[string]int64{}
	}
	f.next[hierarchyID]++
	return f.next[hierarchyID], nil
}

type leaveFixture struct {
	db   *sql.DB
	mock sqlmock.Sqlmock

	repo      *fakeLeaveRepository
	types     *fakeLeaveTypeStore
	directory *fakeEmployeeDirectory
	enforcer  *fakeEnforcer
	planner   *fakePlanner
	resolver  *fakeResolver
	ledger    *fakeLedger

	employeeID  uuid.UUID
	hierarchyID uuid.UUID
	leaveTypeID uuid.UUID

	svc leave.Service
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &leaveFixture{
		db:          db,
		mock:        mock,
		repo:        newFakeLeaveRepository(),
		enforcer:    &fakeEnforcer{},
		planner:     &fakePlanner{},
		resolver:    &fakeResolver{},
		ledger:      &fakeLedger{sufficient: true},
		employeeID:  uuid.New(),
		hierarchyID: uuid.New(),
		leaveTypeID: uuid.New(),
	}
	f.types = &fakeLeaveTypeStore{
		leaveType: &leavetype.LeaveType{
			ID:                 f.leaveTypeID,
			Name:               "Paid Leave",
			FlowMode:           domain.FlowSerial,
			MaxConsecutiveDays: 0,
			AllowHalfDay:       true,
			IsActive:           true,
		},
	}
	f.directory = &fakeEmployeeDirectory{
		users: map[string]*user.User{
			f.employeeID.String(): {
				ID:          f.employeeID,
				HierarchyID: &f.hierarchyID,
				Role:        "EMPLOYEE",
				IsActive:    true,
			},
		},
	}

	f.svc = leave.NewService(
		db, f.repo, f.types, f.directory,
		f.enforcer, f.planner, f.resolver, f.ledger,
		&fakeCounter{}, nil,
	)
	return f
}

func serialPlan(managerID uuid.UUID) []leave.PlannedApproval {
	return []leave.PlannedApproval{
		{Level: domain.LevelManager, StepOrder: 1, Status: domain.ApprovalPending, ApproverID: &managerID},
		{Level: domain.LevelHR, StepOrder: 2, Status: domain.ApprovalBlocked},
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("serial submission creates the chain and stays pending", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		managerID := uuid.New()
		f.planner.plan = serialPlan(managerID)

		resp, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "MANAGER", resp.CurrentStage)
		assert.Equal(t, "LV-000001", resp.Reference)
		assert.Equal(t, float64(5), resp.ActualDays)
		assert.Equal(t, 1, f.repo.createdRequests)
		assert.Equal(t, 2, f.repo.createdApprovals)
		assert.Zero(t, f.ledger.debitCalls)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("weekend days are excluded from the actual count", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.planner.plan = serialPlan(uuid.New())

		// Monday through Sunday: seven calendar days, five weekdays.
		resp, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-08",
		})

		require.NoError(t, err)
		assert.Equal(t, float64(7), resp.RequestedDays)
		assert.Equal(t, float64(5), resp.ActualDays)
	})

	t.Run("empty plan auto approves and debits immediately", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.planner.plan = nil

		resp, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-03",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, leave.StageCompleted, resp.CurrentStage)
		assert.Equal(t, 1, f.ledger.debitCalls)
		assert.True(t, f.ledger.debitedQty.Equal(decimal.NewFromInt(2)))
	})

	t.Run("reference numbering restarts per hierarchy", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.planner.plan = serialPlan(uuid.New())

		otherHierarchy := uuid.New()
		otherEmployee := uuid.New()
		f.directory.users[otherEmployee.String()] = &user.User{
			ID:          otherEmployee,
			HierarchyID: &otherHierarchy,
			Role:        "EMPLOYEE",
			IsActive:    true,
		}

		first, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-03",
		})
		require.NoError(t, err)

		second, err := f.svc.Submit(ctx, otherEmployee.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-03",
		})
		require.NoError(t, err)

		assert.Equal(t, "LV-000001", first.Reference)
		assert.Equal(t, "LV-000001", second.Reference)
		assert.Equal(t, 2, f.repo.createdRequests)
	})

	t.Run("blocking blackout rejects before any write", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.enforcer.evaluation = blackout.Evaluation{
			Blocking: &blackout.BlackoutPeriod{
				Name:      "Year-end close",
				StartDate: day("2026-03-01"),
				EndDate:   day("2026-03-10"),
			},
		}

		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrBlackoutBlocked)
		assert.Zero(t, f.repo.createdRequests)
		assert.Zero(t, f.repo.createdApprovals)
	})

	t.Run("warn blackout lets the request through with a warning", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.planner.plan = serialPlan(uuid.New())
		f.enforcer.evaluation = blackout.Evaluation{
			Warnings: []blackout.BlackoutPeriod{{Name: "Quarter close"}},
		}

		resp, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		require.NoError(t, err)
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "Quarter close")
	})

	t.Run("overlapping active request is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.repo.overlap = true

		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingRequest)
	})

	t.Run("consecutive day cap counts calendar days", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.types.leaveType.MaxConsecutiveDays = 6

		// Five weekdays but seven calendar days.
		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-08",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrConsecutiveDaysCap)
	})

	t.Run("insufficient balance is rejected before planning", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.ledger.sufficient = false

		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.Zero(t, f.repo.createdRequests)
	})

	t.Run("half day must not span days", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-03",
			HalfDay:     true,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySpansDays)
	})

	t.Run("half day rejected when the type disallows it", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.types.leaveType.AllowHalfDay = false

		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-02",
			HalfDay:     true,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDayNotAllowed)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.Submit(ctx, f.employeeID.String(), leave.SubmitLeaveRequest{
			LeaveTypeID: f.leaveTypeID.String(),
			StartDate:   "2026-03-06",
			EndDate:     "2026-03-02",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

// seedRequest stores a pending serial request with a manager and an
// HR stage, returning the request and its approvals.
func seedRequest(f *leaveFixture, flowMode domain.FlowMode) (*leave.LeaveRequest, []leave.Approval) {
	requestID := uuid.New()
	request := &leave.LeaveRequest{
		ID:          requestID,
		Reference:   "LV-000042",
		EmployeeID:  f.employeeID,
		LeaveTypeID: f.leaveTypeID,
		HierarchyID: f.hierarchyID,
		StartDate:   day("2026-03-02"),
		EndDate:     day("2026-03-06"),
		ActualDays:  decimal.NewFromInt(5),
		FlowMode:    flowMode,
		Status:      domain.RequestPending,
	}

	hrStatus := domain.ApprovalBlocked
	hrOrder := 2
	if flowMode == domain.FlowParallel {
		hrStatus = domain.ApprovalPending
		hrOrder = 1
	}
	approvals := []leave.Approval{
		{ID: uuid.New(), RequestID: requestID, Level: domain.LevelManager, StepOrder: 1, Status: domain.ApprovalPending},
		{ID: uuid.New(), RequestID: requestID, Level: domain.LevelHR, StepOrder: hrOrder, Status: hrStatus},
	}

	f.repo.requests[requestID.String()] = request
	f.repo.approvals[requestID.String()] = approvals
	return request, approvals
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("manager approval unlocks the next serial stage", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		request, approvals := seedRequest(f, domain.FlowSerial)
		managerID := uuid.New()

		resp, err := f.svc.Decide(ctx, managerID.String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.NewRequestStatus)
		assert.Equal(t, "HR", resp.CurrentStage)
		assert.Equal(t, []int{2}, f.repo.unlockedSteps)
		assert.Zero(t, f.ledger.debitCalls)

		stored := f.repo.approvals[request.ID.String()]
		assert.Equal(t, domain.ApprovalApproved, stored[0].Status)
		assert.Equal(t, domain.ApprovalPending, stored[1].Status)
		require.NotNil(t, stored[0].ActorID)
		assert.Equal(t, managerID, *stored[0].ActorID)
		assert.NotNil(t, stored[0].DecidedAt)
	})

	t.Run("final approval debits the balance once", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		request, approvals := seedRequest(f, domain.FlowSerial)
		f.repo.approvals[request.ID.String()][0].Status = domain.ApprovalApproved
		f.repo.approvals[request.ID.String()][1].Status = domain.ApprovalPending

		resp, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleHR, "", leave.DecideRequest{
			ApprovalID: approvals[1].ID.String(),
			Action:     "APPROVE",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.NewRequestStatus)
		assert.Equal(t, leave.StageCompleted, resp.CurrentStage)
		assert.Equal(t, 1, f.ledger.debitCalls)
		assert.True(t, f.ledger.debitedQty.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, request.ID, f.ledger.debitRequest)
	})

	t.Run("rejection short-circuits a parallel chain", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		request, approvals := seedRequest(f, domain.FlowParallel)

		resp, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleHR, "", leave.DecideRequest{
			ApprovalID: approvals[1].ID.String(),
			Action:     "REJECT",
			Comment:    "headcount freeze",
		})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.NewRequestStatus)
		assert.Zero(t, f.ledger.debitCalls)
		assert.Equal(t, domain.RequestRejected, f.repo.requests[request.ID.String()].Status)
	})

	t.Run("request id picks the actor's lowest pending stage", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		request, _ := seedRequest(f, domain.FlowSerial)

		resp, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			RequestID: request.ID.String(),
			Action:    "APPROVE",
		})

		require.NoError(t, err)
		assert.Equal(t, "HR", resp.CurrentStage)
	})

	t.Run("second decision on the same stage conflicts", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, approvals := seedRequest(f, domain.FlowSerial)
		f.repo.approvals[approvals[0].RequestID.String()][0].Status = domain.ApprovalApproved

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
	})

	t.Run("blocked stage cannot be decided", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, approvals := seedRequest(f, domain.FlowSerial)

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleHR, "", leave.DecideRequest{
			ApprovalID: approvals[1].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotPending)
	})

	t.Run("approval must belong to the addressed request", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		requestA, _ := seedRequest(f, domain.FlowSerial)
		_, approvalsB := seedRequest(f, domain.FlowSerial)

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			RequestID:  requestA.ID.String(),
			ApprovalID: approvalsB[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrApprovalNotFound)
		assert.Equal(t, domain.ApprovalPending, f.repo.approvals[approvalsB[0].RequestID.String()][0].Status)
	})

	t.Run("actors cannot decide their own request", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, approvals := seedRequest(f, domain.FlowSerial)

		_, err := f.svc.Decide(ctx, f.employeeID.String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrOwnRequest)
	})

	t.Run("level and role must match", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, approvals := seedRequest(f, domain.FlowSerial)

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleHR, "", leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotEntitled)
	})

	t.Run("manager from another hierarchy is not entitled", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, approvals := seedRequest(f, domain.FlowSerial)

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleManager, uuid.New().String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotEntitled)
	})

	t.Run("assigned employee only accepts the effective manager", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, approvals := seedRequest(f, domain.FlowSerial)
		f.resolver.assigned = true
		f.resolver.managerID = uuid.New()

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotEntitled)
	})

	t.Run("delegate covering the period may decide", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		_, approvals := seedRequest(f, domain.FlowSerial)
		delegateID := uuid.New()
		f.resolver.assigned = true
		f.resolver.managerID = delegateID

		_, err := f.svc.Decide(ctx, delegateID.String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "APPROVE",
		})

		assert.NoError(t, err)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)
		_, approvals := seedRequest(f, domain.FlowSerial)

		_, err := f.svc.Decide(ctx, uuid.New().String(), domain.RoleManager, f.hierarchyID.String(), leave.DecideRequest{
			ApprovalID: approvals[0].ID.String(),
			Action:     "MAYBE",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidAction)
	})
}

func TestLeaveService_ListPendingApprovals(t *testing.T) {
	ctx := context.Background()
	hierarchyID := uuid.New().String()

	row := func(employeeID string) leave.PendingApprovalRow {
		return leave.PendingApprovalRow{
			ApprovalID:  uuid.NewString(),
			RequestID:   uuid.NewString(),
			Level:       domain.LevelManager,
			StepOrder:   1,
			Reference:   "LV-000007",
			EmployeeID:  employeeID,
			HierarchyID: hierarchyID,
			LeaveTypeID: uuid.NewString(),
			StartDate:   day("2026-03-02"),
			EndDate:     day("2026-03-06"),
			FlowMode:    domain.FlowSerial,
		}
	}

	t.Run("unassigned employees are visible to every manager", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.repo.pendingRows = []leave.PendingApprovalRow{row(uuid.NewString())}

		out, err := f.svc.ListPendingApprovals(ctx, uuid.NewString(), domain.RoleManager, hierarchyID)

		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("assigned employees are visible only to the effective manager", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.repo.pendingRows = []leave.PendingApprovalRow{row(uuid.NewString())}
		effective := uuid.New()
		f.resolver.assigned = true
		f.resolver.managerID = effective

		out, err := f.svc.ListPendingApprovals(ctx, uuid.NewString(), domain.RoleManager, hierarchyID)
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = f.svc.ListPendingApprovals(ctx, effective.String(), domain.RoleManager, hierarchyID)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("reviewers never see their own submissions", func(t *testing.T) {
		f := newLeaveFixture(t)
		reviewerID := uuid.NewString()
		f.repo.pendingRows = []leave.PendingApprovalRow{row(reviewerID)}

		out, err := f.svc.ListPendingApprovals(ctx, reviewerID, domain.RoleManager, hierarchyID)

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("hr review is not narrowed by hierarchy", func(t *testing.T) {
		f := newLeaveFixture(t)
		hrRow := row(uuid.NewString())
		hrRow.Level = domain.LevelHR
		f.repo.pendingRows = []leave.PendingApprovalRow{hrRow}

		out, err := f.svc.ListPendingApprovals(ctx, uuid.NewString(), domain.RoleHR, "")

		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("employees cannot review", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.ListPendingApprovals(ctx, uuid.NewString(), domain.RoleEmployee, hierarchyID)

		assert.ErrorIs(t, err, leaveerrors.ErrNotEntitled)
	})

	t.Run("manager without hierarchy context is rejected", func(t *testing.T) {
		f := newLeaveFixture(t)

		_, err := f.svc.ListPendingApprovals(ctx, uuid.NewString(), domain.RoleManager, "")

		assert.ErrorIs(t, err, leaveerrors.ErrNotEntitled)
	})
}
