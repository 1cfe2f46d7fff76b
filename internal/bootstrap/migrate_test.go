package bootstrap

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"go-leaveflow/internal/assignment"
)

// The exclusion constraint is raw SQL, so a renamed entity column
// would only surface as a failed ALTER TABLE at boot. Pin the
// constraint to the columns gorm actually derives for the entity.
func TestMigrateDelegationConstraintColumns(t *testing.T) {
	s, err := schema.Parse(&assignment.ManagerDelegation{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var stmt string
	for _, raw := range rawStatements {
		if strings.Contains(raw, "excl_delegation_overlap") {
			stmt = raw
		}
	}
	require.NotEmpty(t, stmt)

	for _, col := range []string{"delegator_id", "start_date", "end_date", "active"} {
		require.Contains(t, stmt, col)
		require.Contains(t, s.FieldsByDBName, col)
	}
	require.NotContains(t, s.FieldsByDBName, "manager_id")
	require.NotContains(t, stmt, "manager_id")
}
