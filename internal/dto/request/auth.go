package request

type SignInRequest struct {
	UserID   string `json:"user_id" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RootSignInRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type IssueCodeRequest struct {
	UserID string `json:"user_id" validate:"required,email"`
}

type SetPasswordRequest struct {
	Code     string `json:"code" validate:"required,len=64"`
	Password string `json:"password" validate:"required,min=8"`
}
