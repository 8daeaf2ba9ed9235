package airquality

import (
	"context"
	"time"

	"vrisa/internal/domain"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type measurementAPI interface {
	Variables(ctx context.Context, token string) ([]domain.Variable, error)
	History(ctx context.Context, token string, hq upstream.HistoryQuery) (*domain.HistorySeries, error)
	CurrentAQI(ctx context.Context, token string, stationID *int64) ([]domain.AQISnapshot, error)
	Stats(ctx context.Context, token string) (*domain.PlatformStats, error)
}

// Service reads dashboard data. All numbers come from the backend; nothing
// is computed or cached here.
type Service struct {
	api measurementAPI
}

func NewService(api measurementAPI) *Service {
	return &Service{api: api}
}

func (s *Service) Current(ctx context.Context, sess *session.Session, stationID *int64) ([]domain.AQISnapshot, error) {
	return s.api.CurrentAQI(ctx, sess.AccessToken, stationID)
}

func (s *Service) Variables(ctx context.Context, sess *session.Session) ([]domain.Variable, error) {
	return s.api.Variables(ctx, sess.AccessToken)
}

type HistoryRequest struct {
	StationID    int64
	VariableCode string
	From, To     time.Time
}

func (s *Service) History(ctx context.Context, sess *session.Session, req HistoryRequest) (*domain.HistorySeries, error) {
	if !req.From.IsZero() && !req.To.IsZero() && req.To.Before(req.From) {
		return nil, ErrInvalidRange
	}
	return s.api.History(ctx, sess.AccessToken, upstream.HistoryQuery{
		StationID:    req.StationID,
		VariableCode: req.VariableCode,
		From:         req.From,
		To:           req.To,
	})
}

func (s *Service) Stats(ctx context.Context, sess *session.Session) (*domain.PlatformStats, error) {
	return s.api.Stats(ctx, sess.AccessToken)
}
