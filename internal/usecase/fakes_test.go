package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"adviser-portal/internal/data/entity"
	"adviser-portal/internal/data/repository"
	"adviser-portal/internal/gateway"
)

// fakeDB is the shared in-memory state behind the fake repositories. The
// clock is settable so expiry windows can be tested without sleeping.
type fakeDB struct {
	mu sync.Mutex

	now time.Time

	creds      map[string]*entity.Credential
	advisers   map[int64]*entity.Adviser
	contacts   map[int64]*entity.Contact
	persons    map[string]*entity.PersonEntity
	nonpersons map[string]*entity.NonPersonEntity
	admins     map[string]*entity.Admin
	events     []*entity.Event
	payloads   map[int64]*entity.EventPayload
	files      []*entity.ApplicantFile

	nextAdviserID int64
	nextAdminID   int64
	nextEventID   int64
	nextFileID    int64

	failEntityInsert bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		creds:      map[string]*entity.Credential{},
		advisers:   map[int64]*entity.Adviser{},
		contacts:   map[int64]*entity.Contact{},
		persons:    map[string]*entity.PersonEntity{},
		nonpersons: map[string]*entity.NonPersonEntity{},
		admins:     map[string]*entity.Admin{},
		payloads:   map[int64]*entity.EventPayload{},
	}
}

func (d *fakeDB) clock() time.Time {
	if d.now.IsZero() {
		return time.Now()
	}
	return d.now
}

func (d *fakeDB) setNow(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = t
}

func (d *fakeDB) repos() *repository.Repository {
	return &repository.Repository{
		Credential: &fakeCredRepo{db: d},
		Adviser:    &fakeAdviserRepo{db: d},
		Admin:      &fakeAdminRepo{db: d},
		Event:      &fakeEventRepo{db: d},
		File:       &fakeFileRepo{db: d},
	}
}

// ---------- credentials ----------

type fakeCredRepo struct {
	db *fakeDB
}

func (r *fakeCredRepo) FindByUserID(_ context.Context, userID string) (*entity.Credential, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cred, ok := r.db.creds[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cred
	return &copied, nil
}

func (r *fakeCredRepo) UpdateStatus(_ context.Context, userID string, status entity.CredentialStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cred, ok := r.db.creds[userID]
	if !ok {
		return repository.ErrNotFound
	}
	cred.Status = status
	return nil
}

func (r *fakeCredRepo) SetDigest(_ context.Context, userID, digest string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cred, ok := r.db.creds[userID]
	if !ok {
		return repository.ErrNotFound
	}
	cred.Digest = digest
	return nil
}

func (r *fakeCredRepo) SaveVerificationCode(_ context.Context, email, code string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, cred := range r.db.creds {
		if cred.Email == email {
			c := code
			e := expiresAt
			cred.VerificationCode = &c
			cred.CodeExpiresAt = &e
			cred.IsVerified = false
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeCredRepo) FindByVerificationCode(_ context.Context, code string) (*entity.Credential, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, cred := range r.db.creds {
		if cred.VerificationCode != nil && *cred.VerificationCode == code &&
			cred.CodeExpiresAt != nil && cred.CodeExpiresAt.After(r.db.clock()) {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCredRepo) ConsumePassword(_ context.Context, userID, code, digest string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cred, ok := r.db.creds[userID]
	if !ok || cred.VerificationCode == nil || *cred.VerificationCode != code ||
		cred.CodeExpiresAt == nil || !cred.CodeExpiresAt.After(r.db.clock()) {
		return repository.ErrNotFound
	}
	cred.Digest = digest
	cred.Status = entity.CredentialActive
	cred.VerificationCode = nil
	cred.CodeExpiresAt = nil
	cred.IsVerified = true
	return nil
}

// ---------- advisers ----------

type fakeAdviserRepo struct {
	db *fakeDB
}

func (r *fakeAdviserRepo) CreateBundle(_ context.Context, bundle *entity.Bundle) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cred := bundle.Credential
	if _, exists := r.db.creds[cred.UserID]; exists {
		return repository.ErrUniqueViolation
	}
	if r.db.failEntityInsert {
		return repository.ErrForeignKeyViolation
	}

	adviserID := int64(-1)
	if bundle.Adviser != nil {
		r.db.nextAdviserID++
		adviserID = r.db.nextAdviserID
		bundle.Adviser.ID = adviserID
		copied := *bundle.Adviser
		r.db.advisers[adviserID] = &copied
	} else if cred.AdviserID != nil {
		adviserID = *cred.AdviserID
	}

	stored := *cred
	stored.AdviserID = &adviserID
	r.db.creds[cred.UserID] = &stored

	if bundle.Contact != nil {
		bundle.Contact.AdviserID = adviserID
		copied := *bundle.Contact
		r.db.contacts[adviserID] = &copied
	}

	switch {
	case bundle.Entity.Person != nil:
		bundle.Entity.Person.AdviserID = adviserID
		copied := *bundle.Entity.Person
		r.db.persons[copied.UserID] = &copied
	case bundle.Entity.NonPerson != nil:
		bundle.Entity.NonPerson.AdviserID = adviserID
		copied := *bundle.Entity.NonPerson
		r.db.nonpersons[copied.UserID] = &copied
	}

	return nil
}

func (r *fakeAdviserRepo) profileLocked(cred *entity.Credential) *entity.AdviserProfile {
	if cred.AdviserID == nil {
		return nil
	}
	adviser, ok := r.db.advisers[*cred.AdviserID]
	if !ok {
		return nil
	}

	profile := &entity.AdviserProfile{
		AdviserID:        adviser.ID,
		UserID:           cred.UserID,
		Email:            cred.Email,
		MobileNo:         cred.MobileNo,
		KraPIN:           adviser.KraPIN,
		AccountNumber:    adviser.AccountNo,
		PartnerNumber:    adviser.PartnerNumber,
		IntermediaryType: adviser.IntermediaryType,
		Status:           adviser.Status,
	}
	if person, ok := r.db.persons[cred.UserID]; ok {
		profile.Names = person.FullNames
	} else if nonperson, ok := r.db.nonpersons[cred.UserID]; ok {
		profile.Names = nonperson.Names
	}
	if contact, ok := r.db.contacts[adviser.ID]; ok {
		profile.FixedPhone = contact.FixedPhoneNo
		profile.Address = contact.PrimaryAddress
		profile.City = contact.City
	}
	return profile
}

func (r *fakeAdviserRepo) FindProfileByUserID(_ context.Context, userID string) (*entity.AdviserProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cred, ok := r.db.creds[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	profile := r.profileLocked(cred)
	if profile == nil {
		return nil, repository.ErrNotFound
	}
	return profile, nil
}

func (r *fakeAdviserRepo) FindPersonByUserID(_ context.Context, userID string) (*entity.PersonEntity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	person, ok := r.db.persons[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *person
	return &copied, nil
}

func (r *fakeAdviserRepo) UpdateStatusByUserID(_ context.Context, userID string, status entity.AdviserStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cred, ok := r.db.creds[userID]
	if !ok || cred.AdviserID == nil {
		return repository.ErrNotFound
	}
	adviser, ok := r.db.advisers[*cred.AdviserID]
	if !ok {
		return repository.ErrNotFound
	}
	adviser.Status = status
	return nil
}

func (r *fakeAdviserRepo) allProfilesLocked() []*entity.AdviserProfile {
	var profiles []*entity.AdviserProfile
	for _, cred := range r.db.creds {
		if profile := r.profileLocked(cred); profile != nil {
			profiles = append(profiles, profile)
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].AdviserID < profiles[j].AdviserID })
	return profiles
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r *fakeAdviserRepo) FindProfiles(_ context.Context, limit, offset int) ([]*entity.AdviserProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return page(r.allProfilesLocked(), limit, offset), nil
}

func (r *fakeAdviserRepo) FindProfilesByStatus(_ context.Context, status entity.AdviserStatus, negate bool, limit, offset int) ([]*entity.AdviserProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []*entity.AdviserProfile
	for _, profile := range r.allProfilesLocked() {
		if (profile.Status == status) != negate {
			matched = append(matched, profile)
		}
	}
	return page(matched, limit, offset), nil
}

func (r *fakeAdviserRepo) CountProfiles(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.allProfilesLocked())), nil
}

func (r *fakeAdviserRepo) CountProfilesByStatus(_ context.Context, status entity.AdviserStatus, negate bool) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var count int64
	for _, profile := range r.allProfilesLocked() {
		if (profile.Status == status) != negate {
			count++
		}
	}
	return count, nil
}

// ---------- admins ----------

type fakeAdminRepo struct {
	db *fakeDB
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *entity.Admin) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, exists := r.db.admins[admin.UserID]; exists {
		return repository.ErrUniqueViolation
	}
	r.db.nextAdminID++
	admin.ID = r.db.nextAdminID
	admin.CreateDate = r.db.clock()
	copied := *admin
	r.db.admins[admin.UserID] = &copied
	return nil
}

func (r *fakeAdminRepo) FindByUserID(_ context.Context, userID string) (*entity.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	admin, ok := r.db.admins[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) FindByStatus(_ context.Context, status entity.AdminStatus) ([]*entity.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []*entity.Admin
	for _, admin := range r.db.admins {
		if admin.Status == status {
			copied := *admin
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeAdminRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []*entity.Admin
	for _, admin := range r.db.admins {
		copied := *admin
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (r *fakeAdminRepo) CountAll(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.admins)), nil
}

func (r *fakeAdminRepo) UpdateStatus(_ context.Context, userID string, status entity.AdminStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	admin, ok := r.db.admins[userID]
	if !ok {
		return repository.ErrNotFound
	}
	admin.Status = status
	return nil
}

func (r *fakeAdminRepo) SaveVerificationCode(_ context.Context, email, code string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, admin := range r.db.admins {
		if admin.Email == email {
			c := code
			e := expiresAt
			admin.VerificationCode = &c
			admin.CodeExpiresAt = &e
			admin.IsVerified = false
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeAdminRepo) FindByVerificationCode(_ context.Context, code string) (*entity.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, admin := range r.db.admins {
		if admin.VerificationCode != nil && *admin.VerificationCode == code &&
			admin.CodeExpiresAt != nil && admin.CodeExpiresAt.After(r.db.clock()) {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAdminRepo) ConsumePassword(_ context.Context, userID, code, digest string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	admin, ok := r.db.admins[userID]
	if !ok || admin.VerificationCode == nil || *admin.VerificationCode != code ||
		admin.CodeExpiresAt == nil || !admin.CodeExpiresAt.After(r.db.clock()) {
		return repository.ErrNotFound
	}
	admin.Digest = digest
	admin.Status = entity.AdminActive
	admin.VerificationCode = nil
	admin.CodeExpiresAt = nil
	admin.IsVerified = true
	return nil
}

// ---------- events ----------

type fakeEventRepo struct {
	db *fakeDB
}

func (r *fakeEventRepo) Store(_ context.Context, event *entity.Event, payload *entity.EventPayload) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextEventID++
	event.ID = r.db.nextEventID
	event.CreateDate = r.db.clock()
	copied := *event
	r.db.events = append(r.db.events, &copied)
	if payload != nil {
		payload.ID = event.ID
		payload.EventID = event.ID
		copiedPayload := *payload
		r.db.payloads[event.ID] = &copiedPayload
	}
	return nil
}

func (r *fakeEventRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	reversed := make([]*entity.Event, 0, len(r.db.events))
	for i := len(r.db.events) - 1; i >= 0; i-- {
		copied := *r.db.events[i]
		reversed = append(reversed, &copied)
	}
	return page(reversed, limit, offset), nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, eventID int64) (*entity.FullEvent, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, event := range r.db.events {
		if event.ID == eventID {
			full := &entity.FullEvent{Event: *event}
			// Payload rows are optional, same as the store's left join.
			if payload, ok := r.db.payloads[eventID]; ok {
				full.PayloadID = payload.ID
				full.Request = payload.Request
				full.Result = payload.Result
				full.Response = payload.Response
			}
			return full, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeEventRepo) CountAll(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.events)), nil
}

// ---------- files ----------

type fakeFileRepo struct {
	db *fakeDB
}

func (r *fakeFileRepo) Create(_ context.Context, file *entity.ApplicantFile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextFileID++
	file.ID = r.db.nextFileID
	copied := *file
	r.db.files = append(r.db.files, &copied)
	return nil
}

func (r *fakeFileRepo) FindByUserID(_ context.Context, userID string) ([]*entity.ApplicantFile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var matched []*entity.ApplicantFile
	for _, file := range r.db.files {
		if file.UserID == userID {
			copied := *file
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

// ---------- gateways ----------

type fakeMailer struct {
	mu    sync.Mutex
	sent  [][]string
	links []string
	err   error
}

func (m *fakeMailer) SendVerificationLink(_ context.Context, recipients []string, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, recipients)
	m.links = append(m.links, link)
	return nil
}

type fakeVerifier struct {
	record *gateway.IdentityRecord
	err    error
}

func (v *fakeVerifier) Verify(_ context.Context, idNumber, idType string) (*gateway.IdentityRecord, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.record != nil {
		return v.record, nil
	}
	return &gateway.IdentityRecord{IDNumber: idNumber, IDType: idType, Valid: false}, nil
}
