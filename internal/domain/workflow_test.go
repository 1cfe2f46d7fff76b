package domain_test

import (
	"testing"

	"go-leaveflow/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseFlowMode(t *testing.T) {
	cases := map[string]domain.FlowMode{
		"serial":   domain.FlowSerial,
		"SERIAL":   domain.FlowSerial,
		"":         domain.FlowSerial,
		"Parallel": domain.FlowParallel,
	}
	for raw, want := range cases {
		got, err := domain.ParseFlowMode(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := domain.ParseFlowMode("roundrobin")
	assert.Error(t, err)
}

func TestParseDecisionAction(t *testing.T) {
	got, err := domain.ParseDecisionAction("approve")
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionApprove, got)

	got, err = domain.ParseDecisionAction("Rejected")
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionReject, got)

	_, err = domain.ParseDecisionAction("defer")
	assert.Error(t, err)
}

func TestLevelForRole(t *testing.T) {
	level, ok := domain.LevelForRole(domain.RoleHR)
	assert.True(t, ok)
	assert.Equal(t, domain.LevelHR, level)

	_, ok = domain.LevelForRole(domain.RoleEmployee)
	assert.False(t, ok)
}
