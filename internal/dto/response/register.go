package response

type RegisterResponse struct {
	UserID           string `json:"user_id"`
	AdviserID        int64  `json:"adviser_id"`
	CredentialType   string `json:"credential_type"`
	CredentialStatus string `json:"credential_status"`
	AdviserStatus    string `json:"adviser_status,omitempty"`
}

type SaveFileResponse struct {
	FileID int64  `json:"file_id"`
	UserID string `json:"user_id"`
}
