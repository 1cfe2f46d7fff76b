package rbac

import (
	"testing"

	"go-leaveflow/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

type mockRepo struct{}

func (m *mockRepo) GetUserRoles() ([]UserRoleRow, error) {
	return []UserRoleRow{
		{UserID: "user-1", Role: "MANAGER"},
		{UserID: "user-2", Role: "EMPLOYEE"},
	}, nil
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{Role: "MANAGER", Resource: "approval", Action: "decide"},
		{Role: "EMPLOYEE", Resource: "leave_request", Action: "create"},
	}, nil
}

func (m *mockRepo) ListPermissions() ([]PermissionRow, error) { return nil, nil }
func (m *mockRepo) GetPermissionsByRole(string) ([]PermissionRow, error) {
	return nil, nil
}
func (m *mockRepo) UpdateRolePermissions(string, []string) error { return nil }

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{}
	enforcer := newTestEnforcer(t)

	service := NewService(repo, enforcer)

	err := service.LoadPolicy()
	assert.NoError(t, err)

	allowed, err := service.Enforce(domain.EnforceRequest{
		UserID:   "user-1",
		Resource: "approval",
		Action:   "decide",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := service.Enforce(domain.EnforceRequest{
		UserID:   "user-2",
		Resource: "approval",
		Action:   "decide",
	})
	assert.NoError(t, err)
	assert.False(t, denied)
}
