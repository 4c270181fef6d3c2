package entity

// CredentialType is the RBAC role carried by a credential and its tokens.
type CredentialType string

const (
	CredentialRoot             CredentialType = "root"
	CredentialAdmin            CredentialType = "admin"
	CredentialAdviserAdmin     CredentialType = "adviser_admin"
	CredentialAdviserUser      CredentialType = "adviser_user"
	CredentialAdviserApplicant CredentialType = "adviser_applicant"
)

type CredentialStatus string

const (
	CredentialNotSet    CredentialStatus = "Not_Set"
	CredentialActive    CredentialStatus = "Active"
	CredentialExpired   CredentialStatus = "Expired"
	CredentialInvalid   CredentialStatus = "Invalid"
	CredentialMustReset CredentialStatus = "Must_Reset"
)

type AdviserStatus string

const (
	AdviserPendingApproval AdviserStatus = "Pending_Approval"
	AdviserApproved        AdviserStatus = "Approved"
	AdviserActive          AdviserStatus = "Active"
)

type AdminStatus string

const (
	AdminPending  AdminStatus = "Pending"
	AdminActive   AdminStatus = "Active"
	AdminDisabled AdminStatus = "Disabled"
)

type LegalEntityType string

const (
	LegalEntityPerson    LegalEntityType = "person"
	LegalEntityNonPerson LegalEntityType = "non_person"
)

type IntermediaryType string

const (
	IntermediaryApplicant IntermediaryType = "Applicant"
	IntermediaryMigrated  IntermediaryType = "Migrated"
	IntermediaryTBD       IntermediaryType = "TBD"
)

type RBAC string

const (
	RBACRegistered RBAC = "Registered"
	RBACTBD        RBAC = "TBD"
)

// RegistrationKind selects the creation path in the registration engine.
type RegistrationKind string

const (
	RegMigrated  RegistrationKind = "migrated"
	RegApplicant RegistrationKind = "applicant"
	RegStaff     RegistrationKind = "staff"
)

// adviserTransitions is the closed set of forward-only adviser status moves.
// Anything not listed here is rejected, so an Approved adviser can never be
// pushed back to Pending_Approval through the status API.
var adviserTransitions = map[AdviserStatus][]AdviserStatus{
	AdviserPendingApproval: {AdviserApproved},
	AdviserApproved:        {AdviserActive},
	AdviserActive:          {},
}

// CanTransitionAdviser reports whether from -> to is an allowed adviser move.
func CanTransitionAdviser(from, to AdviserStatus) bool {
	for _, next := range adviserTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// credentialTransitions gates sign-in eligibility. Not_Set -> Active is the
// terminal onboarding move, triggered only by a successful password set.
// Deactivation paths are explicit admin actions.
var credentialTransitions = map[CredentialStatus][]CredentialStatus{
	CredentialNotSet:    {CredentialActive},
	CredentialActive:    {CredentialExpired, CredentialInvalid, CredentialMustReset},
	CredentialMustReset: {CredentialActive},
	CredentialExpired:   {CredentialInvalid},
	CredentialInvalid:   {},
}

func CanTransitionCredential(from, to CredentialStatus) bool {
	for _, next := range credentialTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var adminTransitions = map[AdminStatus][]AdminStatus{
	AdminPending:  {AdminActive, AdminDisabled},
	AdminActive:   {AdminDisabled},
	AdminDisabled: {AdminActive},
}

func CanTransitionAdmin(from, to AdminStatus) bool {
	for _, next := range adminTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
