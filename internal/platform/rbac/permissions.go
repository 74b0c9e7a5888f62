package rbac

// Capability identifies one permitted module or action. Module-level
// capabilities gate navigation and data access for a whole workflow area.
type Capability string

const (
	ModuleDashboard     Capability = "dashboard"
	ModulePatients      Capability = "patients"
	ModuleAppointments  Capability = "appointments"
	ModuleConsultations Capability = "consultations"
	ModuleAdmissions    Capability = "admissions"
	ModuleLaboratory    Capability = "laboratory"
	ModulePharmacy      Capability = "pharmacy"
	ModuleBilling       Capability = "billing"
	ModuleReports       Capability = "reports"
	ModuleDocuments     Capability = "documents"
	ModuleUsers         Capability = "users"
)

var allCapabilities = []Capability{
	ModuleDashboard, ModulePatients, ModuleAppointments, ModuleConsultations,
	ModuleAdmissions, ModuleLaboratory, ModulePharmacy, ModuleBilling,
	ModuleReports, ModuleDocuments, ModuleUsers,
}

// Capabilities returns all module capabilities. The slice is a copy.
func Capabilities() []Capability {
	out := make([]Capability, len(allCapabilities))
	copy(out, allCapabilities)
	return out
}

// Valid reports whether the capability is one of the enumerated set.
func (c Capability) Valid() bool {
	for _, known := range allCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

// defaultPermissions is the canonical role → capability table. It is seeded
// once and read-only at runtime; per-user overrides layer on top via
// ApplyOverrides.
var defaultPermissions = map[Role][]Capability{
	RoleAdmin: {
		ModuleDashboard, ModulePatients, ModuleAppointments, ModuleConsultations,
		ModuleAdmissions, ModuleLaboratory, ModulePharmacy, ModuleBilling,
		ModuleReports, ModuleDocuments, ModuleUsers,
	},
	RoleDoctor: {
		ModuleDashboard, ModulePatients, ModuleAppointments, ModuleConsultations,
		ModuleAdmissions, ModuleLaboratory, ModuleReports, ModuleDocuments,
	},
	RoleNurse: {
		ModuleDashboard, ModulePatients, ModuleAppointments, ModuleConsultations,
		ModuleAdmissions, ModuleLaboratory, ModuleDocuments,
	},
	RolePharmacist: {
		ModuleDashboard, ModulePatients, ModulePharmacy, ModuleDocuments,
	},
	RoleCashier: {
		ModuleDashboard, ModuleBilling, ModuleDocuments,
	},
	RoleReceptionist: {
		ModuleDashboard, ModulePatients, ModuleAppointments,
	},
	RoleTherapist: {
		ModuleDashboard, ModulePatients, ModuleAppointments, ModuleConsultations,
		ModuleDocuments,
	},
	RoleStaff: {
		ModuleDashboard, ModulePatients, ModuleBilling, ModuleReports,
		ModuleDocuments,
	},
}

// ResolvePermissions returns the default capability set for a role. Unknown
// roles resolve to an empty set, never an error.
func ResolvePermissions(role Role) []Capability {
	defaults, ok := defaultPermissions[role]
	if !ok {
		return nil
	}
	out := make([]Capability, len(defaults))
	copy(out, defaults)
	return out
}

// ApplyOverrides resolves the effective capability set for a role and an
// explicit grant list. A non-empty grant list replaces the role defaults
// outright; it is not merged.
func ApplyOverrides(role Role, grants []Capability) []Capability {
	if len(grants) > 0 {
		out := make([]Capability, len(grants))
		copy(out, grants)
		return out
	}
	return ResolvePermissions(role)
}

// HasRole reports whether the actor holds exactly the given role.
func HasRole(a *Actor, role Role) bool {
	return a != nil && a.Role == role
}

// HasAnyRole reports whether the actor's role is one of the given roles.
func HasAnyRole(a *Actor, roles ...Role) bool {
	if a == nil {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// CanAccessModule decides whether the actor may use the given module. The
// check fails closed: a nil actor, a deactivated account, or an unknown role
// all resolve to denied. The active check runs before any role lookup.
func CanAccessModule(a *Actor, module Capability) bool {
	if a == nil || !a.Active {
		return false
	}
	for _, cap := range ApplyOverrides(a.Role, a.Grants) {
		if cap == module {
			return true
		}
	}
	return false
}
