package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles the engine understands. Role names
// arrive from tokens and legacy clients as free text with locale
// variants, so every entry point must go through ParseRole.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleDirector Role = "DIRECTOR"
	RoleHR       Role = "HR"
)

var roleAliases = map[string]Role{
	"employee":            RoleEmployee,
	"employe":             RoleEmployee,
	"employé":             RoleEmployee,
	"salarie":             RoleEmployee,
	"salarié":             RoleEmployee,
	"collaborateur":       RoleEmployee,
	"manager":             RoleManager,
	"responsable":         RoleManager,
	"chef d'equipe":       RoleManager,
	"director":            RoleDirector,
	"directeur":           RoleDirector,
	"directrice":          RoleDirector,
	"direction":           RoleDirector,
	"hr":                  RoleHR,
	"rh":                  RoleHR,
	"ressources humaines": RoleHR,
	"human resources":     RoleHR,
}

// ParseRole maps a caller-supplied role name to its canonical value.
// Unrecognized names are rejected rather than passed through.
func ParseRole(raw string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if role, ok := roleAliases[normalized]; ok {
		return role, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

func (r Role) String() string {
	return string(r)
}

// IsReviewer reports whether the role can act on approvals at all.
func (r Role) IsReviewer() bool {
	switch r {
	case RoleManager, RoleDirector, RoleHR:
		return true
	default:
		return false
	}
}
