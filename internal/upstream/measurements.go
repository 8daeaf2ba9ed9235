package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"vrisa/internal/domain"
)

func (c *Client) Variables(ctx context.Context, token string) ([]domain.Variable, error) {
	var vars []domain.Variable
	if err := c.get(ctx, "/measurements/variables/", token, nil, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

type HistoryQuery struct {
	StationID    int64
	VariableCode string
	From, To     time.Time
}

func (c *Client) History(ctx context.Context, token string, hq HistoryQuery) (*domain.HistorySeries, error) {
	q := url.Values{}
	q.Set("station", strconv.FormatInt(hq.StationID, 10))
	if hq.VariableCode != "" {
		q.Set("variable", hq.VariableCode)
	}
	if !hq.From.IsZero() {
		q.Set("from", hq.From.Format(time.RFC3339))
	}
	if !hq.To.IsZero() {
		q.Set("to", hq.To.Format(time.RFC3339))
	}

	var series domain.HistorySeries
	if err := c.get(ctx, "/measurements/data/history/", token, q, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// CurrentAQI reads the backend-computed index. The endpoint is public, so the
// dashboard poller calls it without a token; a nil stationID means all
// stations.
func (c *Client) CurrentAQI(ctx context.Context, token string, stationID *int64) ([]domain.AQISnapshot, error) {
	q := url.Values{}
	if stationID != nil {
		q.Set("station", strconv.FormatInt(*stationID, 10))
	}
	var snaps []domain.AQISnapshot
	if err := c.get(ctx, "/measurements/aqi/current/", token, q, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}
