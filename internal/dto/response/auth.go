package response

type SignInResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Names    string `json:"names,omitempty"`
	Status   string `json:"status,omitempty"`
	Verified bool   `json:"verified"`
}

type SetPasswordResponse struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}
