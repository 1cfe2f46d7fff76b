package bootstrap

import (
	"gorm.io/gorm"

	"go-leaveflow/internal/assignment"
	"go-leaveflow/internal/balance"
	"go-leaveflow/internal/blackout"
	"go-leaveflow/internal/hierarchy"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/leavetype"
	"go-leaveflow/internal/notification"
	"go-leaveflow/internal/rbac"
	"go-leaveflow/internal/user"
)

// Migrate applies the schema. AutoMigrate covers the entities; the
// raw statements add what gorm tags cannot express: the counter
// table, the outbox table, the single-active-assignment partial
// index, and the delegation overlap exclusion constraint.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&hierarchy.Hierarchy{},
		&leavetype.LeaveType{},
		&assignment.ManagerAssignment{},
		&assignment.ManagerDelegation{},
		&blackout.BlackoutPeriod{},
		&balance.LeaveBalance{},
		&balance.BalanceMovement{},
		&leave.LeaveRequest{},
		&leave.Approval{},
		&notification.Notification{},
		&rbac.PermissionRow{},
		&rbac.UserRoleRow{},
		&rbac.RolePermissionRow{},
	); err != nil {
		return err
	}

	for _, stmt := range rawStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// rawStatements hold the DDL gorm tags cannot express. The exclusion
// constraint columns must track the assignment entity's column names.
var rawStatements = []string{
	`CREATE TABLE IF NOT EXISTS hierarchy_counters (
		hierarchy_id uuid NOT NULL,
		counter_type varchar(64) NOT NULL,
		last_value bigint NOT NULL DEFAULT 0,
		updated_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (hierarchy_id, counter_type)
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id uuid PRIMARY KEY,
		request_id varchar(64),
		aggregate_type varchar(64) NOT NULL,
		aggregate_id uuid NOT NULL,
		event_type varchar(64) NOT NULL,
		topic varchar(128) NOT NULL,
		payload jsonb NOT NULL,
		status varchar(16) NOT NULL,
		retry_count int NOT NULL DEFAULT 0,
		next_retry_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_assignment_active
		ON manager_assignments (hierarchy_id, employee_id)
		WHERE active`,
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$ BEGIN
		ALTER TABLE manager_delegations
			ADD CONSTRAINT excl_delegation_overlap
			EXCLUDE USING gist (
				delegator_id WITH =,
				daterange(start_date::date, end_date::date, '[]') WITH &&
			) WHERE (active);
	EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
	END $$`,
}
