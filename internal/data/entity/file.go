package entity

// ApplicantFile stores an uploaded application document blob for an applicant.
type ApplicantFile struct {
	ID       int64  `db:"id"`
	UserID   string `db:"user_id"`
	FileDesc string `db:"file_desc"`
	FileData string `db:"file_data"`
}
