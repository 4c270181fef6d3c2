package usecase

import (
	"testing"
	"time"

	"adviser-portal/internal/data/entity"
	"adviser-portal/internal/data/repository"
	"adviser-portal/internal/dto/request"
	"adviser-portal/pkg/token"
	"adviser-portal/pkg/utils"

	"go.uber.org/zap"
)

type testEnv struct {
	db       *fakeDB
	repo     *repository.Repository
	mailer   *fakeMailer
	verifier *fakeVerifier
	tokens   *token.Service
	config   *utils.Config
	svc      *Service
}

func newTestEnv(t *testing.T) *testEnv {
	return newEnv(t, false)
}

// newAuditedEnv enables the event trail. Audit writes are asynchronous, so
// assertions on them poll with require.Eventually.
func newAuditedEnv(t *testing.T) *testEnv {
	return newEnv(t, true)
}

func newEnv(t *testing.T, storeEvents bool) *testEnv {
	t.Helper()

	db := newFakeDB()
	repo := db.repos()
	mailer := &fakeMailer{}
	verifier := &fakeVerifier{}
	tokens := token.NewService("test-signing-key", "adviser-portal-test", time.Hour)
	config := &utils.Config{
		App:    utils.AppConfig{PageSize: 25},
		JWT:    utils.JWTConfig{Secret: "test-signing-key", Issuer: "adviser-portal-test", ExpiryHours: 1},
		Root:   utils.RootConfig{Secret: "root-secret"},
		Code:   utils.CodeConfig{ExpiryHours: 24},
		Client: utils.ClientConfig{URL: "https://portal.example.com"},
		Audit:  utils.AuditConfig{StoreEvents: storeEvents},
	}

	svc := NewService(repo, config, tokens, verifier, mailer, zap.NewNop())

	return &testEnv{
		db:       db,
		repo:     repo,
		mailer:   mailer,
		verifier: verifier,
		tokens:   tokens,
		config:   config,
		svc:      svc,
	}
}

func migratedRequest(userID string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Kind:     string(entity.RegMigrated),
		UserID:   userID,
		Password: "StrongPass1",
		Adviser: request.AdviserPayload{
			KraPIN:       "A012345678Z",
			PrimaryEmail: userID,
			MobileNo:     "0712345678",
			IDNumber:     "12345678",
			IDType:       "national_id",
			FullNames:    "Jane Wanjiku Mwangi",
			FirstName:    "Jane",
			LastName:     "Mwangi",
			DateOfBirth:  "1985-04-12",
		},
	}
}

func applicantRequest(userID string) *request.RegisterRequest {
	req := migratedRequest(userID)
	req.Kind = string(entity.RegApplicant)
	req.Password = ""
	return req
}

func staffRequest(userID, parentUserID string) *request.RegisterRequest {
	req := migratedRequest(userID)
	req.Kind = string(entity.RegStaff)
	req.AdviserUserID = parentUserID
	return req
}

func mustHash(t *testing.T, plaintext string) string {
	t.Helper()
	digest, err := utils.HashPassword(plaintext)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return digest
}

func (e *testEnv) seedActiveAdmin(t *testing.T, userID, email string) {
	t.Helper()
	digest, err := utils.HashPassword("AdminPass1")
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	e.db.nextAdminID++
	e.db.admins[userID] = &entity.Admin{
		ID:       e.db.nextAdminID,
		UserID:   userID,
		Email:    email,
		MobileNo: "0700000000",
		Digest:   digest,
		Status:   entity.AdminActive,
	}
}
