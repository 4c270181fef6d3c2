package usecase

import (
	"context"
	"errors"
	"testing"

	"adviser-portal/internal/data/entity"
	"adviser-portal/internal/dto/request"
	"adviser-portal/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMigratedCreatesFullBundle(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Registration.Register(context.Background(), migratedRequest("jane@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", resp.UserID)
	assert.Equal(t, string(entity.CredentialAdviserAdmin), resp.CredentialType)
	assert.Equal(t, string(entity.CredentialActive), resp.CredentialStatus)
	assert.Equal(t, string(entity.AdviserApproved), resp.AdviserStatus)
	assert.NotZero(t, resp.AdviserID)

	// All four rows exist.
	assert.Len(t, env.db.creds, 1)
	assert.Len(t, env.db.advisers, 1)
	assert.Len(t, env.db.contacts, 1)
	assert.Len(t, env.db.persons, 1)
}

func TestRegisterDuplicateReturnsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Registration.Register(ctx, migratedRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = env.svc.Registration.Register(ctx, migratedRequest("jane@example.com"))
	require.ErrorIs(t, err, ErrConflict)

	// Exactly one credential row remains.
	assert.Len(t, env.db.creds, 1)
}

func TestRegisterStaffSelfReferenceRejectedWithoutStoreTouch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Registration.Register(context.Background(),
		staffRequest("a@example.com", "a@example.com"))
	require.ErrorIs(t, err, ErrInvalidRequest)

	assert.Empty(t, env.db.creds)
	assert.Empty(t, env.db.advisers)
	assert.Empty(t, env.db.persons)
}

func TestRegisterStaffRequiresAdviserAdminParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("missing parent", func(t *testing.T) {
		_, err := env.svc.Registration.Register(ctx, staffRequest("staff@example.com", "ghost@example.com"))
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("parent is not adviser admin", func(t *testing.T) {
		_, err := env.svc.Registration.Register(ctx, applicantRequest("applicant@example.com"))
		require.NoError(t, err)

		_, err = env.svc.Registration.Register(ctx, staffRequest("staff@example.com", "applicant@example.com"))
		assert.ErrorIs(t, err, ErrInvalidParent)
	})
}

func TestRegisterStaffAttachesToParentAdviser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent, err := env.svc.Registration.Register(ctx, migratedRequest("parent@example.com"))
	require.NoError(t, err)

	resp, err := env.svc.Registration.Register(ctx, staffRequest("staff@example.com", "parent@example.com"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.CredentialAdviserUser), resp.CredentialType)
	assert.Equal(t, parent.AdviserID, resp.AdviserID)

	// No adviser or contact row of its own, but a person row exists.
	assert.Len(t, env.db.advisers, 1)
	assert.Len(t, env.db.contacts, 1)
	assert.Contains(t, env.db.persons, "staff@example.com")

	cred := env.db.creds["staff@example.com"]
	require.NotNil(t, cred.AdviserID)
	assert.Equal(t, parent.AdviserID, *cred.AdviserID)
}

func TestRegisterApplicantPendingIssuesCodeAndNotifiesAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.seedActiveAdmin(t, "admin@example.com", "admin@example.com")

	resp, err := env.svc.Registration.Register(context.Background(), applicantRequest("bob@example.com"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AdviserPendingApproval), resp.AdviserStatus)
	assert.Equal(t, string(entity.CredentialNotSet), resp.CredentialStatus)

	cred := env.db.creds["bob@example.com"]
	require.NotNil(t, cred.VerificationCode)
	require.NotNil(t, cred.CodeExpiresAt)
	assert.False(t, cred.IsVerified)

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, []string{"admin@example.com"}, env.mailer.sent[0])
	assert.Contains(t, env.mailer.links[0], *cred.VerificationCode)
}

func TestRegisterApplicantAutoApprovedOnRegistryMatch(t *testing.T) {
	env := newTestEnv(t)
	env.verifier.record = &gateway.IdentityRecord{Valid: true}

	resp, err := env.svc.Registration.Register(context.Background(), applicantRequest("bob@example.com"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AdviserApproved), resp.AdviserStatus)
	// No pending notification was triggered.
	assert.Empty(t, env.mailer.sent)
}

func TestRegisterApplicantRegistryFailureLeavesPending(t *testing.T) {
	env := newTestEnv(t)
	env.verifier.err = errors.New("registry timeout")

	resp, err := env.svc.Registration.Register(context.Background(), applicantRequest("bob@example.com"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AdviserPendingApproval), resp.AdviserStatus)
}

func TestRegisterNotificationFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	env.seedActiveAdmin(t, "admin@example.com", "admin@example.com")
	env.mailer.err = errors.New("relay down")

	resp, err := env.svc.Registration.Register(context.Background(), applicantRequest("bob@example.com"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdviserPendingApproval), resp.AdviserStatus)

	// Registration and the stored code both stand.
	assert.Len(t, env.db.creds, 1)
	assert.NotNil(t, env.db.creds["bob@example.com"].VerificationCode)
}

func TestRegisterBundleFailureLeavesNoResidualRows(t *testing.T) {
	env := newTestEnv(t)
	env.db.failEntityInsert = true

	_, err := env.svc.Registration.Register(context.Background(), migratedRequest("jane@example.com"))
	require.Error(t, err)

	assert.Empty(t, env.db.creds)
	assert.Empty(t, env.db.advisers)
	assert.Empty(t, env.db.contacts)
	assert.Empty(t, env.db.persons)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("missing payload fields", func(t *testing.T) {
		_, err := env.svc.Registration.Register(ctx, &request.RegisterRequest{
			Kind:   string(entity.RegMigrated),
			UserID: "jane@example.com",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown kind", func(t *testing.T) {
		req := migratedRequest("jane@example.com")
		req.Kind = "franchise"
		_, err := env.svc.Registration.Register(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRegisterNonPersonEntity(t *testing.T) {
	env := newTestEnv(t)

	req := migratedRequest("agency@example.com")
	req.LegalEntityType = string(entity.LegalEntityNonPerson)
	req.Adviser.IDType = "registration_no"
	req.Adviser.Names = "Acme Insurance Agency Ltd"
	req.Adviser.DateOfIncorporation = "2010-06-01"

	_, err := env.svc.Registration.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, env.db.nonpersons, "agency@example.com")
	assert.NotContains(t, env.db.persons, "agency@example.com")
	assert.Equal(t, "Acme Insurance Agency Ltd", env.db.nonpersons["agency@example.com"].Names)
}

func TestSaveApplicantFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("unknown owner", func(t *testing.T) {
		_, err := env.svc.Registration.SaveApplicantFile(ctx, &request.SaveFileRequest{
			UserID:   "ghost@example.com",
			FileDesc: "kra_certificate",
			FileData: "aGVsbG8=",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("stores file for known identity", func(t *testing.T) {
		_, err := env.svc.Registration.Register(ctx, applicantRequest("bob@example.com"))
		require.NoError(t, err)

		resp, err := env.svc.Registration.SaveApplicantFile(ctx, &request.SaveFileRequest{
			UserID:   "bob@example.com",
			FileDesc: "kra_certificate",
			FileData: "aGVsbG8=",
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.FileID)
		assert.Len(t, env.db.files, 1)
	})
}

func TestQueryPlatformAdviser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("registry match", func(t *testing.T) {
		env.verifier.record = &gateway.IdentityRecord{IDNumber: "12345678", Valid: true}
		record, err := env.svc.Registration.QueryPlatformAdviser(ctx, &request.PlatformAdviserQuery{
			IDNumber: "12345678",
			IDType:   "national_id",
		})
		require.NoError(t, err)
		assert.True(t, record.Valid)
	})

	t.Run("no registry match", func(t *testing.T) {
		env.verifier.record = nil
		env.verifier.err = gateway.ErrRecordNotFound
		_, err := env.svc.Registration.QueryPlatformAdviser(ctx, &request.PlatformAdviserQuery{
			IDNumber: "00000000",
			IDType:   "national_id",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
