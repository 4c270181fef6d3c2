package response

import (
	"time"

	"adviser-portal/internal/data/entity"
)

type AdminResponse struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	MobileNo   string    `json:"mobile_no"`
	Status     string    `json:"status"`
	CreateDate time.Time `json:"create_date"`
}

func NewAdminResponse(a entity.Admin) AdminResponse {
	return AdminResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Email:      a.Email,
		MobileNo:   a.MobileNo,
		Status:     string(a.Status),
		CreateDate: a.CreateDate,
	}
}
