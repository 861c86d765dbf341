// Package auth holds the role permission model and password hashing used by
// the web API and the user commands.
package auth

import (
	"sort"

	"github.com/julianstephens/leitstand/internal/models"
)

// Role names an operator role
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleTrafficManager   Role = "verkehrsleiter"
	RoleDeputyManager    Role = "vertretung_verkehrsleiter"
	RoleSupervision      Role = "ueberwachung"
	RoleHumanResources   Role = "personalabteilung"
	RoleUser             Role = "benutzer"
	RoleReadonly         Role = "readonly"
	defaultFallbackRole       = RoleReadonly
)

// Roles lists every known role
func Roles() []Role {
	return []Role{RoleAdmin, RoleTrafficManager, RoleDeputyManager, RoleSupervision, RoleHumanResources, RoleUser, RoleReadonly}
}

// IsKnown reports whether r is one of the fixed roles
func (r Role) IsKnown() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Area is a permission-gated part of the application
type Area string

const (
	AreaAbsences            Area = "absences"
	AreaRoadworks           Area = "roadworks"
	AreaCharter             Area = "charter"
	AreaAppointments        Area = "appointments"
	AreaMedicalAppointments Area = "medicalAppointments"
	AreaNotices             Area = "notices"
	AreaTodos               Area = "todos"
	AreaTrainings           Area = "trainings"
	AreaServiceMessages     Area = "serviceMessages"
)

// AreaFor maps a collection to the area guarding it. Users have no area and
// are admin-only.
func AreaFor(c models.Collection) (Area, bool) {
	switch c {
	case models.CollectionAbsences:
		return AreaAbsences, true
	case models.CollectionRoadworks:
		return AreaRoadworks, true
	case models.CollectionCharterTrips:
		return AreaCharter, true
	case models.CollectionAppointments:
		return AreaAppointments, true
	case models.CollectionMedicalAppointments:
		return AreaMedicalAppointments, true
	case models.CollectionNotices:
		return AreaNotices, true
	case models.CollectionTodos:
		return AreaTodos, true
	case models.CollectionTrainings:
		return AreaTrainings, true
	case models.CollectionServiceMessages:
		return AreaServiceMessages, true
	default:
		return "", false
	}
}

// Permission is the view/edit pair of one area
type Permission struct {
	View bool `json:"view"`
	Edit bool `json:"edit"`
}

// Permissions maps areas to rights. Missing areas grant nothing.
type Permissions map[Area]Permission

func (p Permissions) CanView(a Area) bool { return p[a].View }
func (p Permissions) CanEdit(a Area) bool { return p[a].Edit }

// Areas returns the areas present in p, sorted
func (p Permissions) Areas() []Area {
	out := make([]Area, 0, len(p))
	for a := range p {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	operationalAreas = []Area{
		AreaAbsences, AreaRoadworks, AreaCharter, AreaAppointments,
		AreaMedicalAppointments, AreaTodos, AreaTrainings,
	}
	editAll = Permission{View: true, Edit: true}
	viewAll = Permission{View: true}
)

func grant(p Permission, areas ...Area) Permissions {
	out := make(Permissions, len(areas))
	for _, a := range areas {
		out[a] = p
	}
	return out
}

// Defaults returns the built-in permissions of role, or nil for unknown roles
func Defaults(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return grant(editAll, append(operationalAreas, AreaNotices, AreaServiceMessages)...)
	case RoleTrafficManager:
		return grant(editAll, operationalAreas...)
	case RoleSupervision:
		return grant(viewAll, append(operationalAreas, AreaNotices)...)
	case RoleDeputyManager, RoleHumanResources, RoleUser, RoleReadonly:
		return grant(viewAll, operationalAreas...)
	default:
		return nil
	}
}

// Merge starts from the role defaults, falling back to readonly for unknown
// roles, and overlays per-user overrides. Overrides only apply to areas the
// base grants know about.
func Merge(role Role, overrides map[string]models.AreaPermission) Permissions {
	base := Defaults(role)
	if base == nil {
		base = Defaults(defaultFallbackRole)
	}
	for area, perm := range base {
		o, ok := overrides[string(area)]
		if !ok {
			continue
		}
		if o.View != nil {
			perm.View = *o.View
		}
		if o.Edit != nil {
			perm.Edit = *o.Edit
		}
		base[area] = perm
	}
	return base
}

// ForUser resolves the effective permissions of u
func ForUser(u models.User) Permissions {
	return Merge(Role(u.Role), u.Permissions)
}

// CanUseAssistant reports whether role may request AI briefings
func CanUseAssistant(role Role) bool {
	return role == RoleAdmin
}

// CanManageUsers reports whether role may create or modify accounts
func CanManageUsers(role Role) bool {
	return role == RoleAdmin
}
