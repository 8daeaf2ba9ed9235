package domain

import "time"

// ResearcherRequest is a pending researcher role-assignment awaiting review.
type ResearcherRequest struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	DocumentType   string     `json:"document_type"`
	DocumentNumber string     `json:"document_number"`
	Affiliation    string     `json:"affiliated_institution"`
	Status         RoleStatus `json:"approval_status"`
	CreatedAt      time.Time  `json:"created_at"`
}
