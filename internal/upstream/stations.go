package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"vrisa/internal/domain"
)

// StationFilter narrows the stations list. A nil InstitutionID means all
// institutions (super-admin view).
type StationFilter struct {
	InstitutionID *int64
	Status        domain.StationStatus
}

func (c *Client) ListStations(ctx context.Context, token string, f StationFilter) ([]domain.Station, error) {
	q := url.Values{}
	if f.InstitutionID != nil {
		q.Set("institution", strconv.FormatInt(*f.InstitutionID, 10))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	var stations []domain.Station
	if err := c.get(ctx, "/stations/", token, q, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func (c *Client) GetStation(ctx context.Context, token string, id int64) (*domain.Station, error) {
	var st domain.Station
	if err := c.get(ctx, fmt.Sprintf("/stations/%d/", id), token, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// CreateStationPayload is the two-step wizard result: basics plus the seed
// sensor, submitted together.
type CreateStationPayload struct {
	Name          string              `json:"name"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	Address       string              `json:"address,omitempty"`
	InstitutionID int64               `json:"institution_id"`
	Sensors       []CreateSensorInput `json:"sensors"`
}

type CreateSensorInput struct {
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	SerialNumber string `json:"serial_number"`
	InstalledAt  string `json:"installation_date,omitempty"`
}

func (c *Client) CreateStation(ctx context.Context, token string, p CreateStationPayload) (*domain.Station, error) {
	var st domain.Station
	if err := c.post(ctx, "/stations/", token, p, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// PatchStation mutates station fields. Approval sets status ACTIVE, rejection
// sets REJECTED; the backend remains the authority on both.
func (c *Client) PatchStation(ctx context.Context, token string, id int64, fields map[string]any) (*domain.Station, error) {
	var st domain.Station
	if err := c.patch(ctx, fmt.Sprintf("/stations/%d/", id), token, fields, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
