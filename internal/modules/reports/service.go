package reports

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"vrisa/internal/domain"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type reportAPI interface {
	Variables(ctx context.Context, token string) ([]domain.Variable, error)
	DownloadReport(ctx context.Context, token string, category upstream.ReportCategory, query url.Values) (*upstream.Report, error)
}

// Service backs the report picker and the download relay. Report rendering
// stays on the backend; this only forwards bytes.
type Service struct {
	api     reportAPI
	periods PeriodSource
	now     func() time.Time
}

func NewService(api reportAPI) *Service {
	return &Service{api: api, periods: SynthesizedSource{}, now: time.Now}
}

// Options is everything the report form needs to render its selects.
type Options struct {
	Variables  []domain.Variable         `json:"variables"`
	Categories []upstream.ReportCategory `json:"categories"`
	Weekly     []Period                  `json:"weekly_periods"`
	Monthly    []Period                  `json:"monthly_periods"`
}

func (s *Service) Options(ctx context.Context, sess *session.Session) (*Options, error) {
	vars, err := s.api.Variables(ctx, sess.AccessToken)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &Options{
		Variables:  vars,
		Categories: []upstream.ReportCategory{upstream.CategoryQuality, upstream.CategoryTrends, upstream.CategoryAlerts},
		Weekly:     s.periods.Periods(Weekly, now),
		Monthly:    s.periods.Periods(Monthly, now),
	}, nil
}

type DownloadRequest struct {
	Category  upstream.ReportCategory
	StationID int64
	Variable  string
	From, To  time.Time
}

func (s *Service) Download(ctx context.Context, sess *session.Session, req DownloadRequest) (*upstream.Report, error) {
	q := url.Values{}
	if req.StationID > 0 {
		q.Set("station", strconv.FormatInt(req.StationID, 10))
	}
	if req.Variable != "" {
		q.Set("variable", req.Variable)
	}
	if !req.From.IsZero() {
		q.Set("from", req.From.Format(time.RFC3339))
	}
	if !req.To.IsZero() {
		q.Set("to", req.To.Format(time.RFC3339))
	}
	return s.api.DownloadReport(ctx, sess.AccessToken, req.Category, q)
}
