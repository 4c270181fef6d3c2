package response

import "adviser-portal/internal/data/entity"

type AdviserResponse struct {
	AdviserID        int64  `json:"adviser_id"`
	UserID           string `json:"user_id"`
	Names            string `json:"names"`
	Email            string `json:"email"`
	MobileNo         string `json:"mobile_no"`
	FixedPhone       string `json:"fixed_phone,omitempty"`
	Address          string `json:"address,omitempty"`
	City             string `json:"city,omitempty"`
	KraPIN           string `json:"kra_pin,omitempty"`
	AccountNumber    string `json:"account_number,omitempty"`
	PartnerNumber    string `json:"partner_number,omitempty"`
	IntermediaryType string `json:"intermediary_type"`
	Status           string `json:"status"`
}

func NewAdviserResponse(p entity.AdviserProfile) AdviserResponse {
	return AdviserResponse{
		AdviserID:        p.AdviserID,
		UserID:           p.UserID,
		Names:            p.Names,
		Email:            p.Email,
		MobileNo:         p.MobileNo,
		FixedPhone:       p.FixedPhone,
		Address:          p.Address,
		City:             p.City,
		KraPIN:           p.KraPIN,
		AccountNumber:    p.AccountNumber,
		PartnerNumber:    p.PartnerNumber,
		IntermediaryType: string(p.IntermediaryType),
		Status:           string(p.Status),
	}
}

type StatusResponse struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}
