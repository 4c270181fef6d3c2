package entity

import "time"

type Adviser struct {
	ID               int64            `db:"id"`
	KraPIN           string           `db:"kra_pin"`
	AccountNo        string           `db:"account_no"`
	PartnerNumber    string           `db:"partner_number"`
	IntermediaryType IntermediaryType `db:"intermediary_type"`
	LegalEntityType  LegalEntityType  `db:"legal_entity_type"`
	Country          string           `db:"country"`
	Status           AdviserStatus    `db:"status"`
}

// Contact rows are created together with their Adviser, never on their own.
type Contact struct {
	AdviserID          int64  `db:"adviser_id"`
	MobileNo           string `db:"mobile_no"`
	SecondaryMobileNo  string `db:"secondary_mobile_no"`
	PrimaryEmail       string `db:"primary_email"`
	SecondaryEmail     string `db:"secondary_email"`
	FixedPhoneNo       string `db:"fixed_phone_no"`
	SecondaryFixedNo   string `db:"secondary_fixed_phone_no"`
	PrimaryAddress     string `db:"primary_address"`
	SecondaryAddress   string `db:"secondary_address"`
	City               string `db:"city"`
	SecondaryCity      string `db:"secondary_city"`
	Country            string `db:"country"`
}

type PersonEntity struct {
	AdviserID   int64     `db:"adviser_id"`
	UserID      string    `db:"user_id"`
	IDNumber    string    `db:"id_number"`
	IDType      string    `db:"id_type"`
	DateOfBirth time.Time `db:"date_of_birth"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	FullNames   string    `db:"full_names"`
	Gender      string    `db:"gender"`
}

type NonPersonEntity struct {
	AdviserID           int64     `db:"adviser_id"`
	UserID              string    `db:"user_id"`
	IDNumber            string    `db:"id_number"`
	IDType              string    `db:"id_type"`
	DateOfIncorporation time.Time `db:"date_of_incorporation"`
	Names               string    `db:"names"`
}

// LegalEntity is the person / non-person sum type. Exactly one variant is set,
// chosen by the adviser's legal_entity_type at creation time.
type LegalEntity struct {
	Person    *PersonEntity
	NonPerson *NonPersonEntity
}

func (e LegalEntity) Kind() LegalEntityType {
	if e.NonPerson != nil {
		return LegalEntityNonPerson
	}
	return LegalEntityPerson
}

// Names returns the display name of whichever variant is present.
func (e LegalEntity) Names() string {
	if e.NonPerson != nil {
		return e.NonPerson.Names
	}
	if e.Person != nil {
		return e.Person.FullNames
	}
	return ""
}

// Bundle is the atomic unit a registration produces: all four rows exist
// after a successful call, or none do.
type Bundle struct {
	Adviser    *Adviser
	Contact    *Contact
	Entity     LegalEntity
	Credential *Credential
}

// AdviserProfile is the flattened all_advisers view used for token claims
// and profile reads.
type AdviserProfile struct {
	AdviserID        int64            `db:"adviser_id"`
	UserID           string           `db:"user_id"`
	Names            string           `db:"names"`
	Email            string           `db:"email"`
	MobileNo         string           `db:"mobile_no"`
	FixedPhone       string           `db:"fixed_phone"`
	Address          string           `db:"address"`
	City             string           `db:"city"`
	KraPIN           string           `db:"kra_pin"`
	AccountNumber    string           `db:"account_number"`
	PartnerNumber    string           `db:"partner_number"`
	IntermediaryType IntermediaryType `db:"intermediary_type"`
	Status           AdviserStatus    `db:"status"`
}
