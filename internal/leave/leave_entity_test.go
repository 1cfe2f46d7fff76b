package leave_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/leave"
)

// Reference numbers restart per hierarchy, so the unique index must
// span (hierarchy_id, reference) or the first request of a second
// hierarchy collides with LV-000001 from the first.
func TestLeaveRequestReferenceUniquePerHierarchy(t *testing.T) {
	s, err := schema.Parse(&leave.LeaveRequest{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx, ok := s.ParseIndexes()["uq_leave_reference"]
	require.True(t, ok)
	assert.Equal(t, "UNIQUE", idx.Class)

	require.Len(t, idx.Fields, 2)
	assert.Equal(t, "hierarchy_id", idx.Fields[0].DBName)
	assert.Equal(t, "reference", idx.Fields[1].DBName)
}

func approvalAt(level domain.ApprovalLevel, order int, status domain.ApprovalStatus) leave.Approval {
	return leave.Approval{Level: level, StepOrder: order, Status: status}
}

func TestComputeAggregate(t *testing.T) {
	tests := []struct {
		name      string
		flowMode  domain.FlowMode
		approvals []leave.Approval
		status    domain.RequestStatus
		stage     string
	}{
		{
			name:     "empty chain auto approves",
			flowMode: domain.FlowSerial,
			status:   domain.RequestApproved,
			stage:    leave.StageCompleted,
		},
		{
			name:     "serial chain waits at the first pending level",
			flowMode: domain.FlowSerial,
			approvals: []leave.Approval{
				approvalAt(domain.LevelManager, 1, domain.ApprovalPending),
				approvalAt(domain.LevelHR, 2, domain.ApprovalBlocked),
			},
			status: domain.RequestPending,
			stage:  "MANAGER",
		},
		{
			name:     "serial chain advances after the manager approves",
			flowMode: domain.FlowSerial,
			approvals: []leave.Approval{
				approvalAt(domain.LevelManager, 1, domain.ApprovalApproved),
				approvalAt(domain.LevelHR, 2, domain.ApprovalPending),
			},
			status: domain.RequestPending,
			stage:  "HR",
		},
		{
			name:     "all approved completes the request",
			flowMode: domain.FlowSerial,
			approvals: []leave.Approval{
				approvalAt(domain.LevelManager, 1, domain.ApprovalApproved),
				approvalAt(domain.LevelDirector, 2, domain.ApprovalApproved),
				approvalAt(domain.LevelHR, 3, domain.ApprovalApproved),
			},
			status: domain.RequestApproved,
			stage:  leave.StageCompleted,
		},
		{
			name:     "one rejection rejects the request",
			flowMode: domain.FlowSerial,
			approvals: []leave.Approval{
				approvalAt(domain.LevelManager, 1, domain.ApprovalApproved),
				approvalAt(domain.LevelHR, 2, domain.ApprovalRejected),
			},
			status: domain.RequestRejected,
			stage:  leave.StageCompleted,
		},
		{
			name:     "rejection wins even with pending siblings in parallel",
			flowMode: domain.FlowParallel,
			approvals: []leave.Approval{
				approvalAt(domain.LevelManager, 1, domain.ApprovalPending),
				approvalAt(domain.LevelHR, 1, domain.ApprovalRejected),
			},
			status: domain.RequestRejected,
			stage:  leave.StageCompleted,
		},
		{
			name:     "parallel with pending stages stays in the parallel stage",
			flowMode: domain.FlowParallel,
			approvals: []leave.Approval{
				approvalAt(domain.LevelManager, 1, domain.ApprovalApproved),
				approvalAt(domain.LevelHR, 1, domain.ApprovalPending),
			},
			status: domain.RequestPending,
			stage:  leave.StageParallel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, stage := leave.ComputeAggregate(tt.flowMode, tt.approvals)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestDebitQuantity(t *testing.T) {
	full := leave.LeaveRequest{ActualDays: decimal.NewFromInt(4)}
	assert.True(t, full.DebitQuantity().Equal(decimal.NewFromInt(4)))

	half := leave.LeaveRequest{HalfDay: true, ActualDays: decimal.NewFromFloat(0.5)}
	assert.True(t, half.DebitQuantity().Equal(decimal.NewFromFloat(0.5)))
}
