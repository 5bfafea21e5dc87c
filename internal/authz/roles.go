package authz

import "pizocrm/internal/models"

const (
	RoleAdvisor    = 10
	RoleOperations = 20
	RoleAudit      = 30
	RoleManagement = 40
	RoleAdmin      = 50
)

func IsElevated(roleID int) bool {
	return roleID == RoleOperations || roleID == RoleManagement || roleID == RoleAdmin
}

func IsReadOnly(roleID int) bool {
	return roleID == RoleAudit
}

// SeesAllLeads: elevated roles and audit read every advisor's pipeline.
func SeesAllLeads(roleID int) bool {
	return IsElevated(roleID) || roleID == RoleAudit
}

// CanReadLead allows the owner, the ally, elevated roles and audit.
func CanReadLead(id models.Identity, lead *models.Lead) bool {
	if lead == nil {
		return false
	}
	if SeesAllLeads(id.RoleID) {
		return true
	}
	return id.Asesor != "" && (lead.Asesor == id.Asesor || lead.AsesorAliado == id.Asesor)
}

// CanWriteLead allows the owner and elevated roles. The ally only reads.
func CanWriteLead(id models.Identity, lead *models.Lead) bool {
	if lead == nil || IsReadOnly(id.RoleID) {
		return false
	}
	if IsElevated(id.RoleID) {
		return true
	}
	return id.Asesor != "" && lead.Asesor == id.Asesor
}
