package request

// AdviserPayload carries the adviser-side fields shared by the migrated,
// applicant and staff registration shapes. Identity-document fields feed the
// person / non-person entity row.
type AdviserPayload struct {
	KraPIN        string `json:"kra_pin,omitempty"`
	AccountNo     string `json:"account_no,omitempty"`
	PartnerNumber string `json:"partner_number,omitempty"`
	Country       string `json:"country,omitempty"`

	PrimaryEmail      string `json:"primary_email" validate:"required,email"`
	MobileNo          string `json:"mobile_no" validate:"required,min=10,max=15"`
	SecondaryMobile   string `json:"secondary_mobile,omitempty"`
	SecondaryEmail    string `json:"secondary_email,omitempty" validate:"omitempty,email"`
	PrimaryPhone      string `json:"primary_phone,omitempty"`
	SecondaryPhone    string `json:"secondary_phone,omitempty"`
	PrimaryAddress    string `json:"primary_address,omitempty"`
	SecondaryAddress  string `json:"secondary_address,omitempty"`
	City              string `json:"city,omitempty"`
	SecondaryCity     string `json:"secondary_city,omitempty"`

	IDNumber    string `json:"id_number" validate:"required"`
	IDType      string `json:"id_type" validate:"required,oneof=national_id alien_id passport_no registration_no"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	FullNames   string `json:"full_names" validate:"required"`
	Gender      string `json:"gender,omitempty"`

	// Non-person variant fields.
	DateOfIncorporation string `json:"date_of_incorporation,omitempty"`
	Names               string `json:"names,omitempty"`
}

// RegisterRequest is the unified registration payload. Kind selects the
// creation path; AdviserUserID is required for staff only.
type RegisterRequest struct {
	Kind            string         `json:"reg_type" validate:"required,oneof=migrated applicant staff"`
	UserID          string         `json:"user_id" validate:"required,email"`
	Password        string         `json:"password,omitempty" validate:"omitempty,min=8"`
	AdviserUserID   string         `json:"adviser_user_id,omitempty" validate:"omitempty,email"`
	LegalEntityType string         `json:"legal_entity_type,omitempty" validate:"omitempty,oneof=person non_person"`
	Adviser         AdviserPayload `json:"adviser" validate:"required"`
}

type SaveFileRequest struct {
	UserID   string `json:"user_id" validate:"required,email"`
	FileDesc string `json:"file_desc" validate:"required"`
	FileData string `json:"file_data" validate:"required"`
}

type PlatformAdviserQuery struct {
	IDNumber string `json:"id_number" validate:"required"`
	IDType   string `json:"id_type" validate:"required,oneof=national_id alien_id passport_no registration_no"`
}
