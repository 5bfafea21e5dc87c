package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pizocrm/internal/models"
)

func TestLeadAccess(t *testing.T) {
	lead := &models.Lead{Asesor: "ana", AsesorAliado: "beto"}

	owner := models.Identity{Asesor: "ana", RoleID: RoleAdvisor}
	ally := models.Identity{Asesor: "beto", RoleID: RoleAdvisor}
	stranger := models.Identity{Asesor: "carla", RoleID: RoleAdvisor}
	audit := models.Identity{Asesor: "dora", RoleID: RoleAudit}
	admin := models.Identity{Asesor: "eva", RoleID: RoleAdmin}

	assert.True(t, CanReadLead(owner, lead))
	assert.True(t, CanWriteLead(owner, lead))

	assert.True(t, CanReadLead(ally, lead))
	assert.False(t, CanWriteLead(ally, lead))

	assert.False(t, CanReadLead(stranger, lead))
	assert.False(t, CanWriteLead(stranger, lead))

	assert.True(t, CanReadLead(audit, lead))
	assert.False(t, CanWriteLead(audit, lead))

	assert.True(t, CanReadLead(admin, lead))
	assert.True(t, CanWriteLead(admin, lead))

	assert.False(t, CanReadLead(admin, nil))
}

func TestEmptyAdvisorNeverOwns(t *testing.T) {
	lead := &models.Lead{Asesor: ""}
	anon := models.Identity{RoleID: RoleAdvisor}
	assert.False(t, CanReadLead(anon, lead))
	assert.False(t, CanWriteLead(anon, lead))
}
