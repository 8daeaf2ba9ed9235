package domain

import "time"

type ValidationStatus string

const (
	InstitutionPending  ValidationStatus = "PENDING"
	InstitutionApproved ValidationStatus = "APPROVED"
	InstitutionRejected ValidationStatus = "REJECTED"
)

type Institution struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Address   string           `json:"address"`
	LogoURL   string           `json:"logo_url,omitempty"`
	Colors    []string         `json:"colors,omitempty"`
	Status    ValidationStatus `json:"validation_status"`
	CreatedAt time.Time        `json:"created_at"`
}
