package request

type CreateAdminRequest struct {
	UserID   string `json:"user_id" validate:"required,email"`
	Email    string `json:"email" validate:"required,email"`
	MobileNo string `json:"mobile_no" validate:"required,min=10,max=15"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type UpdateStatusRequest struct {
	UserID string `json:"user_id" validate:"required,email"`
	Status string `json:"status" validate:"required"`
}
