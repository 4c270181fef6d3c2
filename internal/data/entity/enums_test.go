package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdviserTransitions(t *testing.T) {
	assert.True(t, CanTransitionAdviser(AdviserPendingApproval, AdviserApproved))
	assert.True(t, CanTransitionAdviser(AdviserApproved, AdviserActive))

	// Forward-only: no skipping, no going back.
	assert.False(t, CanTransitionAdviser(AdviserPendingApproval, AdviserActive))
	assert.False(t, CanTransitionAdviser(AdviserApproved, AdviserPendingApproval))
	assert.False(t, CanTransitionAdviser(AdviserActive, AdviserPendingApproval))
	assert.False(t, CanTransitionAdviser(AdviserActive, AdviserApproved))
}

func TestCredentialTransitions(t *testing.T) {
	assert.True(t, CanTransitionCredential(CredentialNotSet, CredentialActive))
	assert.True(t, CanTransitionCredential(CredentialActive, CredentialMustReset))
	assert.True(t, CanTransitionCredential(CredentialActive, CredentialExpired))
	assert.True(t, CanTransitionCredential(CredentialActive, CredentialInvalid))
	assert.True(t, CanTransitionCredential(CredentialMustReset, CredentialActive))
	assert.True(t, CanTransitionCredential(CredentialExpired, CredentialInvalid))

	assert.False(t, CanTransitionCredential(CredentialActive, CredentialActive))
	assert.False(t, CanTransitionCredential(CredentialActive, CredentialNotSet))
	assert.False(t, CanTransitionCredential(CredentialInvalid, CredentialActive))
	assert.False(t, CanTransitionCredential(CredentialExpired, CredentialActive))
}

func TestAdminTransitions(t *testing.T) {
	assert.True(t, CanTransitionAdmin(AdminPending, AdminActive))
	assert.True(t, CanTransitionAdmin(AdminPending, AdminDisabled))
	assert.True(t, CanTransitionAdmin(AdminActive, AdminDisabled))
	assert.True(t, CanTransitionAdmin(AdminDisabled, AdminActive))

	assert.False(t, CanTransitionAdmin(AdminActive, AdminPending))
	assert.False(t, CanTransitionAdmin(AdminDisabled, AdminPending))
}

func TestLegalEntityNames(t *testing.T) {
	person := LegalEntity{Person: &PersonEntity{FullNames: "Jane Wanjiku Mwangi"}}
	assert.Equal(t, LegalEntityPerson, person.Kind())
	assert.Equal(t, "Jane Wanjiku Mwangi", person.Names())

	nonPerson := LegalEntity{NonPerson: &NonPersonEntity{Names: "Acme Agency Ltd"}}
	assert.Equal(t, LegalEntityNonPerson, nonPerson.Kind())
	assert.Equal(t, "Acme Agency Ltd", nonPerson.Names())

	assert.Empty(t, LegalEntity{}.Names())
}
