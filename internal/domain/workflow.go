package domain

import (
	"fmt"
	"strings"
)

// ApprovalLevel is one stage of a request's approval sequence.
type ApprovalLevel string

const (
	LevelManager  ApprovalLevel = "MANAGER"
	LevelDirector ApprovalLevel = "DIRECTOR"
	LevelHR       ApprovalLevel = "HR"
)

func (l ApprovalLevel) String() string { return string(l) }

// LevelForRole maps a reviewer role to the approval level it acts on.
func LevelForRole(r Role) (ApprovalLevel, bool) {
	switch r {
	case RoleManager:
		return LevelManager, true
	case RoleDirector:
		return LevelDirector, true
	case RoleHR:
		return LevelHR, true
	}
	return "", false
}

// ApprovalStatus is the per-approval lifecycle:
// Blocked -> Pending -> Approved | Rejected.
type ApprovalStatus string

const (
	ApprovalBlocked  ApprovalStatus = "BLOCKED"
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) String() string { return string(s) }

func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// RequestStatus is a leave request's aggregate status. It is always
// derived from the request's approvals, never written directly.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) String() string { return string(s) }

// FlowMode selects how a request's approval levels are sequenced.
type FlowMode string

const (
	FlowSerial   FlowMode = "SERIAL"
	FlowParallel FlowMode = "PARALLEL"
)

func (m FlowMode) String() string { return string(m) }

func ParseFlowMode(raw string) (FlowMode, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SERIAL", "":
		return FlowSerial, nil
	case "PARALLEL":
		return FlowParallel, nil
	}
	return "", fmt.Errorf("unknown flow mode %q", raw)
}

// DecisionAction is the verb a reviewer applies to a pending approval.
type DecisionAction string

const (
	ActionApprove DecisionAction = "APPROVE"
	ActionReject  DecisionAction = "REJECT"
)

func ParseDecisionAction(raw string) (DecisionAction, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "APPROVE", "APPROVED":
		return ActionApprove, nil
	case "REJECT", "REJECTED":
		return ActionReject, nil
	}
	return "", fmt.Errorf("unknown decision action %q", raw)
}

// BlackoutScope narrows which requests a blackout period applies to.
type BlackoutScope string

const (
	ScopeGlobal     BlackoutScope = "GLOBAL"
	ScopeLeaveType  BlackoutScope = "LEAVE_TYPE"
	ScopeDepartment BlackoutScope = "DEPARTMENT"
	ScopeUser       BlackoutScope = "USER"
)

func (s BlackoutScope) String() string { return string(s) }

func ParseBlackoutScope(raw string) (BlackoutScope, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GLOBAL":
		return ScopeGlobal, nil
	case "LEAVE_TYPE", "LEAVETYPE":
		return ScopeLeaveType, nil
	case "DEPARTMENT":
		return ScopeDepartment, nil
	case "USER":
		return ScopeUser, nil
	}
	return "", fmt.Errorf("unknown blackout scope %q", raw)
}

// EnforceMode is what a matching blackout period does to a submission.
type EnforceMode string

const (
	EnforceBlock           EnforceMode = "BLOCK"
	EnforceWarn            EnforceMode = "WARN"
	EnforceRequireDirector EnforceMode = "REQUIRE_DIRECTOR"
)

func (m EnforceMode) String() string { return string(m) }

func ParseEnforceMode(raw string) (EnforceMode, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BLOCK":
		return EnforceBlock, nil
	case "WARN":
		return EnforceWarn, nil
	case "REQUIRE_DIRECTOR", "REQUIREDIRECTOR":
		return EnforceRequireDirector, nil
	}
	return "", fmt.Errorf("unknown enforce mode %q", raw)
}
