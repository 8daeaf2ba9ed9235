package approvals

import (
	"context"

	"vrisa/internal/domain"
	"vrisa/internal/upstream"
)

type InstitutionAPI interface {
	ListInstitutions(ctx context.Context, token string, status domain.ValidationStatus) ([]domain.Institution, error)
	ApproveInstitutionRequest(ctx context.Context, token string, id int64) error
	RejectInstitutionRequest(ctx context.Context, token string, id int64, reason string) error
}

type StationAPI interface {
	ListStations(ctx context.Context, token string, f upstream.StationFilter) ([]domain.Station, error)
	GetStation(ctx context.Context, token string, id int64) (*domain.Station, error)
	PatchStation(ctx context.Context, token string, id int64, fields map[string]any) (*domain.Station, error)
}

type ResearcherAPI interface {
	PendingResearchers(ctx context.Context, token string) ([]domain.ResearcherRequest, error)
	ApproveResearcher(ctx context.Context, token string, id int64) error
	RejectResearcher(ctx context.Context, token string, id int64, reason string) error
}
