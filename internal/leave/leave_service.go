package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leaveflow/internal/assignment"
	"go-leaveflow/internal/balance"
	"go-leaveflow/internal/blackout"
	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/events"
	leaveerrors "go-leaveflow/internal/leave/errors"
	"go-leaveflow/internal/leavetype"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/shared/contextutil"
	"go-leaveflow/internal/shared/counter"
	"go-leaveflow/internal/user"
)

// EmployeeDirectory and LeaveTypeStore are local interfaces so the
// service depends only on the lookups it performs.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

type LeaveTypeStore interface {
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	ListPendingApprovals(ctx context.Context, reviewerID string, role domain.Role, hierarchyID string) ([]PendingApprovalSummary, error)
	Decide(ctx context.Context, actorID string, actorRole domain.Role, actorHierarchyID string, req DecideRequest) (DecideResponse, error)
	GetHistory(ctx context.Context, requestID string) (HistoryResponse, error)
	ListMyRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListHierarchyRequests(ctx context.Context, hierarchyID string) ([]LeaveRequestResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	leaveTypeRepo LeaveTypeStore
	userRepo      EmployeeDirectory
	enforcer      blackout.Enforcer
	planner       Planner
	resolver      assignment.Resolver
	ledger        balance.Ledger
	counter       counter.Repository
	outbox        kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveTypeRepo LeaveTypeStore,
	userRepo EmployeeDirectory,
	enforcer blackout.Enforcer,
	planner Planner,
	resolver assignment.Resolver,
	ledger balance.Ledger,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
		userRepo:      userRepo,
		enforcer:      enforcer,
		planner:       planner,
		resolver:      resolver,
		ledger:        ledger,
		counter:       counterRepo,
		outbox:        outboxRepo,
		logger:        l,
	}
}

// Submit runs the full gate sequence before any write: blackout
// enforcement, overlap check, consecutive-days cap, balance
// sufficiency. Only then is the approval plan built and persisted,
// all in one transaction with the submitted event.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidID
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}
	start, end = domain.DateOnly(start), domain.DateOnly(end)

	requester, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if requester.HierarchyID == nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidID.WithDetails("requester has no hierarchy")
	}
	requesterRole, err := domain.ParseRole(requester.Role)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lt, err := s.leaveTypeRepo.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound.WithDetails("unknown leave type")
		}
		return LeaveRequestResponse{}, err
	}
	if !lt.IsActive {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound.WithDetails("leave type is not active")
	}

	if req.HalfDay {
		if !lt.AllowHalfDay {
			return LeaveRequestResponse{}, leaveerrors.ErrHalfDayNotAllowed
		}
		if !start.Equal(end) {
			return LeaveRequestResponse{}, leaveerrors.ErrHalfDaySpansDays
		}
	}

	// Requested days count the calendar span; actual days count only
	// the weekdays inside it, and they are what a debit consumes.
	calendarDays := domain.DaysInclusive(start, end)
	requestedDays := decimal.NewFromInt(int64(calendarDays))
	actualDays := decimal.NewFromInt(int64(domain.WeekdaysInclusive(start, end)))
	if req.HalfDay {
		requestedDays = decimal.NewFromFloat(0.5)
		actualDays = requestedDays
	}

	evaluation, err := s.enforcer.Evaluate(ctx, employeeUUID, lt.ID, start, end)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if evaluation.Blocking != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrBlackoutBlocked.WithDetails(fmt.Sprintf(
			"blackout period %q (%s to %s)",
			evaluation.Blocking.Name,
			evaluation.Blocking.StartDate.Format("2006-01-02"),
			evaluation.Blocking.EndDate.Format("2006-01-02"),
		))
	}

	overlap, err := s.repo.HasOverlappingActiveRequest(ctx, employeeID, start, end)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if overlap {
		return LeaveRequestResponse{}, leaveerrors.ErrOverlappingRequest
	}

	if lt.MaxConsecutiveDays > 0 && calendarDays > lt.MaxConsecutiveDays {
		return LeaveRequestResponse{}, leaveerrors.ErrConsecutiveDaysCap.WithDetails(fmt.Sprintf(
			"%d days requested, %d allowed for %s", calendarDays, lt.MaxConsecutiveDays, lt.Name,
		))
	}

	debitQty := actualDays
	sufficient, err := s.ledger.HasSufficient(ctx, employeeUUID, lt.ID, debitQty)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !sufficient {
		return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(fmt.Sprintf(
			"%s days needed for %s", debitQty.String(), lt.Name,
		))
	}

	plan, err := s.planner.BuildPlan(ctx, PlanInput{
		HierarchyID:     *requester.HierarchyID,
		EmployeeID:      employeeUUID,
		EmployeeRole:    requesterRole,
		PolicyLevels:    lt.Levels(),
		FlowMode:        lt.FlowMode,
		RequireDirector: evaluation.RequireDirector,
		PeriodStart:     start,
		PeriodEnd:       end,
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, requester.HierarchyID.String(), "leave_reference")
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	reference := fmt.Sprintf("LV-%06d", nextVal)

	request := &LeaveRequest{
		ID:            uuid.New(),
		Reference:     reference,
		EmployeeID:    employeeUUID,
		LeaveTypeID:   lt.ID,
		HierarchyID:   *requester.HierarchyID,
		StartDate:     start,
		EndDate:       end,
		HalfDay:       req.HalfDay,
		HalfDayPeriod: req.HalfDayPeriod,
		RequestedDays: requestedDays,
		ActualDays:    actualDays,
		Reason:        req.Reason,
		FlowMode:      lt.FlowMode,

		RequiresDirectorOverride: evaluation.RequireDirector,
	}

	approvals := make([]Approval, len(plan))
	for i, p := range plan {
		approvals[i] = Approval{
			ID:         uuid.New(),
			RequestID:  request.ID,
			Level:      p.Level,
			StepOrder:  p.StepOrder,
			Status:     p.Status,
			ApproverID: p.ApproverID,
		}
	}
	request.Status, request.CurrentStage = ComputeAggregate(request.FlowMode, approvals)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.CreateRequest(ctx, request); err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := qtx.CreateApprovals(ctx, approvals); err != nil {
		return LeaveRequestResponse{}, err
	}

	// An empty plan auto-approves: no gates were configured, so the
	// debit fires right here instead of on a decision.
	if len(approvals) == 0 {
		if err := s.ledger.DebitForApproval(ctx, tx, employeeUUID, lt.ID, request.ID, request.DebitQuantity()); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := s.writeSubmittedEvent(ctx, tx, request); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("reference", reference),
		zap.String("employee_id", employeeID),
		zap.String("status", request.Status.String()),
		zap.Int("approvals", len(approvals)),
	)

	resp := mapRequestToResponse(*request, approvals)
	for _, w := range evaluation.Warnings {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"blackout period %q overlaps the requested dates", w.Name,
		))
	}
	return resp, nil
}

// Decide applies one reviewer decision: stamp, serial chain unlock,
// aggregate recompute, idempotent debit, decided event. Everything
// runs in one transaction so a crash cannot strand the chain between
// steps. The in-transaction status recheck turns a concurrent second
// decision into a conflict instead of a silent overwrite.
func (s *service) Decide(ctx context.Context, actorID string, actorRole domain.Role, actorHierarchyID string, req DecideRequest) (DecideResponse, error) {
	action, err := domain.ParseDecisionAction(req.Action)
	if err != nil {
		return DecideResponse{}, leaveerrors.ErrInvalidAction
	}

	approvalID, err := s.resolveApprovalRef(ctx, actorRole, req)
	if err != nil {
		return DecideResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DecideResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	approval, err := qtx.FindApprovalForUpdate(ctx, approvalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DecideResponse{}, leaveerrors.ErrApprovalNotFound
		}
		return DecideResponse{}, err
	}
	// When both references are given the approval must belong to the
	// addressed request; otherwise a decision aimed at one request
	// could land on another's chain.
	if req.ApprovalID != "" && req.RequestID != "" && approval.RequestID.String() != req.RequestID {
		return DecideResponse{}, leaveerrors.ErrApprovalNotFound.WithDetails("approval does not belong to this request")
	}
	if approval.Status.Terminal() {
		return DecideResponse{}, leaveerrors.ErrAlreadyDecided
	}
	if approval.Status != domain.ApprovalPending {
		return DecideResponse{}, leaveerrors.ErrNotPending
	}

	request, err := qtx.FindRequestByID(ctx, approval.RequestID.String())
	if err != nil {
		return DecideResponse{}, err
	}

	if err := s.checkEntitlement(ctx, actorID, actorRole, actorHierarchyID, approval, request); err != nil {
		return DecideResponse{}, err
	}

	now := time.Now().UTC()
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DecideResponse{}, leaveerrors.ErrInvalidID
	}
	approval.ActorID = &actorUUID
	approval.Comment = req.Comment
	approval.DecidedAt = &now
	if action == domain.ActionApprove {
		approval.Status = domain.ApprovalApproved
	} else {
		approval.Status = domain.ApprovalRejected
	}

	if err := qtx.UpdateApproval(ctx, approval); err != nil {
		return DecideResponse{}, err
	}

	if request.FlowMode == domain.FlowSerial && action == domain.ActionApprove {
		if err := qtx.UnlockNextApproval(ctx, request.ID.String(), approval.StepOrder+1); err != nil {
			return DecideResponse{}, err
		}
	}

	approvals, err := qtx.FindApprovalsByRequest(ctx, request.ID.String())
	if err != nil {
		return DecideResponse{}, err
	}

	newStatus, newStage := ComputeAggregate(request.FlowMode, approvals)
	if err := qtx.UpdateRequestStatus(ctx, request.ID.String(), newStatus, newStage); err != nil {
		return DecideResponse{}, err
	}

	if newStatus == domain.RequestApproved {
		if err := s.ledger.DebitForApproval(ctx, tx, request.EmployeeID, request.LeaveTypeID, request.ID, request.DebitQuantity()); err != nil {
			return DecideResponse{}, err
		}
	}

	if err := s.writeDecidedEvent(ctx, tx, request, approval, action, newStatus); err != nil {
		return DecideResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DecideResponse{}, err
	}

	s.logger.Info("decision applied",
		zap.String("request_id", request.ID.String()),
		zap.String("approval_id", approval.ID.String()),
		zap.String("level", approval.Level.String()),
		zap.String("action", string(action)),
		zap.String("new_status", newStatus.String()),
	)

	return DecideResponse{
		RequestID:        request.ID.String(),
		ApprovalID:       approval.ID.String(),
		NewRequestStatus: newStatus.String(),
		CurrentStage:     newStage,
	}, nil
}

// resolveApprovalRef turns either an approval id or a (request id,
// acting role) pair into a concrete approval id. The pair form picks
// the lowest-order pending approval at the actor's level.
func (s *service) resolveApprovalRef(ctx context.Context, actorRole domain.Role, req DecideRequest) (string, error) {
	if req.ApprovalID != "" {
		return req.ApprovalID, nil
	}
	if req.RequestID == "" {
		return "", leaveerrors.ErrInvalidID.WithDetails("approval_id or request_id is required")
	}

	level, ok := domain.LevelForRole(actorRole)
	if !ok {
		return "", leaveerrors.ErrNotEntitled
	}

	approvals, err := s.repo.FindApprovalsByRequest(ctx, req.RequestID)
	if err != nil {
		return "", err
	}

	var candidate *Approval
	for i := range approvals {
		a := &approvals[i]
		if a.Level != level || a.Status != domain.ApprovalPending {
			continue
		}
		if candidate == nil || a.StepOrder < candidate.StepOrder {
			candidate = a
		}
	}
	if candidate == nil {
		return "", leaveerrors.ErrApprovalNotFound
	}
	return candidate.ID.String(), nil
}

func (s *service) checkEntitlement(ctx context.Context, actorID string, actorRole domain.Role, actorHierarchyID string, approval *Approval, request *LeaveRequest) error {
	if request.EmployeeID.String() == actorID {
		return leaveerrors.ErrOwnRequest
	}

	level, ok := domain.LevelForRole(actorRole)
	if !ok || level != approval.Level {
		return leaveerrors.ErrNotEntitled
	}

	switch approval.Level {
	case domain.LevelManager, domain.LevelDirector:
		if actorHierarchyID != request.HierarchyID.String() {
			return leaveerrors.ErrNotEntitled.WithDetails("hierarchy mismatch")
		}
	}

	if approval.Level == domain.LevelManager {
		mayAct, err := s.managerMayAct(ctx, actorID, request.HierarchyID.String(), request.EmployeeID.String(), request.StartDate, request.EndDate)
		if err != nil {
			return err
		}
		if !mayAct {
			return leaveerrors.ErrNotEntitled.WithDetails("not the effective manager for this request")
		}
	}
	return nil
}

func (s *service) GetHistory(ctx context.Context, requestID string) (HistoryResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return HistoryResponse{}, leaveerrors.ErrInvalidID
	}

	request, err := s.repo.FindRequestWithApprovals(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HistoryResponse{}, leaveerrors.ErrRequestNotFound
		}
		return HistoryResponse{}, err
	}

	resp := mapRequestToResponse(*request, nil)
	approvals := make([]ApprovalResponse, len(request.Approvals))
	for i, a := range request.Approvals {
		approvals[i] = mapApprovalToResponse(a)
	}
	return HistoryResponse{Request: resp, Approvals: approvals}, nil
}

func (s *service) ListMyRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidID
	}

	requests, err := s.repo.ListRequestsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		res[i] = mapRequestToResponse(r, nil)
	}
	return res, nil
}

func (s *service) ListHierarchyRequests(ctx context.Context, hierarchyID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(hierarchyID); err != nil {
		return nil, leaveerrors.ErrInvalidID
	}

	requests, err := s.repo.ListRequestsByHierarchy(ctx, hierarchyID)
	if err != nil {
		return nil, err
	}

	res := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		res[i] = mapRequestToResponse(r, nil)
	}
	return res, nil
}

func (s *service) writeSubmittedEvent(ctx context.Context, tx *sql.Tx, request *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveRequestSubmittedEvent{
		EventType:   "leave_request_submitted",
		RequestID:   rid,
		LeaveID:     request.ID.String(),
		Reference:   request.Reference,
		EmployeeID:  request.EmployeeID.String(),
		LeaveTypeID: request.LeaveTypeID.String(),
		HierarchyID: request.HierarchyID.String(),
		StartDate:   request.StartDate.Format("2006-01-02"),
		EndDate:     request.EndDate.Format("2006-01-02"),
		Status:      request.Status.String(),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveRequestSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) writeDecidedEvent(ctx context.Context, tx *sql.Tx, request *LeaveRequest, approval *Approval, action domain.DecisionAction, newStatus domain.RequestStatus) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	actorID := ""
	if approval.ActorID != nil {
		actorID = approval.ActorID.String()
	}
	event := events.LeaveRequestDecidedEvent{
		EventType:  "leave_request_decided",
		RequestID:  rid,
		LeaveID:    request.ID.String(),
		Reference:  request.Reference,
		EmployeeID: request.EmployeeID.String(),
		Level:      approval.Level.String(),
		Action:     string(action),
		ActorID:    actorID,
		NewStatus:  newStatus.String(),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveRequestDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapRequestToResponse(r LeaveRequest, approvals []Approval) LeaveRequestResponse {
	requested, _ := r.RequestedDays.Float64()
	actual, _ := r.ActualDays.Float64()
	resp := LeaveRequestResponse{
		ID:            r.ID.String(),
		Reference:     r.Reference,
		EmployeeID:    r.EmployeeID.String(),
		LeaveTypeID:   r.LeaveTypeID.String(),
		HierarchyID:   r.HierarchyID.String(),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		HalfDay:       r.HalfDay,
		HalfDayPeriod: r.HalfDayPeriod,
		RequestedDays: requested,
		ActualDays:    actual,
		Reason:        r.Reason,
		FlowMode:      r.FlowMode.String(),
		Status:        r.Status.String(),
		CurrentStage:  r.CurrentStage,

		RequiresDirectorOverride: r.RequiresDirectorOverride,
	}
	for _, a := range approvals {
		resp.Approvals = append(resp.Approvals, mapApprovalToResponse(a))
	}
	return resp
}

func mapApprovalToResponse(a Approval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:        a.ID.String(),
		Level:     a.Level.String(),
		StepOrder: a.StepOrder,
		Status:    a.Status.String(),
		Comment:   a.Comment,
	}
	if a.ApproverID != nil {
		resp.ApproverID = a.ApproverID.String()
	}
	if a.ActorID != nil {
		resp.ActorID = a.ActorID.String()
	}
	if a.DecidedAt != nil {
		resp.DecidedAt = a.DecidedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
