package upstream

import (
	"context"
	"net/url"
	"strconv"

	"vrisa/internal/domain"
)

func (c *Client) ListSensors(ctx context.Context, token string, stationID int64) ([]domain.Sensor, error) {
	q := url.Values{}
	q.Set("station", strconv.FormatInt(stationID, 10))
	var sensors []domain.Sensor
	if err := c.get(ctx, "/sensors/devices/", token, q, &sensors); err != nil {
		return nil, err
	}
	return sensors, nil
}

type CreateSensorPayload struct {
	StationID    int64  `json:"station_id"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	SerialNumber string `json:"serial_number"`
	InstalledAt  string `json:"installation_date,omitempty"`
}

func (c *Client) CreateSensor(ctx context.Context, token string, p CreateSensorPayload) (*domain.Sensor, error) {
	var s domain.Sensor
	if err := c.post(ctx, "/sensors/devices/", token, p, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) ListMaintenance(ctx context.Context, token string, sensorID int64) ([]domain.MaintenanceLog, error) {
	q := url.Values{}
	q.Set("sensor", strconv.FormatInt(sensorID, 10))
	var logs []domain.MaintenanceLog
	if err := c.get(ctx, "/sensors/maintenance/", token, q, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// MaintenanceForm appends one maintenance log entry. The certificate is
// optional; when present the request goes multipart.
type MaintenanceForm struct {
	SensorID    int64
	Date        string
	Description string
	Technician  string
	Certificate *FileUpload
}

func (c *Client) CreateMaintenance(ctx context.Context, token string, form MaintenanceForm) error {
	if form.Certificate == nil {
		body := map[string]any{
			"sensor_id":   form.SensorID,
			"date":        form.Date,
			"description": form.Description,
			"technician":  form.Technician,
		}
		return c.post(ctx, "/sensors/maintenance/", token, body, nil)
	}

	mp := NewForm().
		Field("sensor_id", strconv.FormatInt(form.SensorID, 10)).
		Field("date", form.Date).
		Field("description", form.Description).
		Field("technician", form.Technician).
		File("certificate", form.Certificate.Filename, form.Certificate.Content)
	return c.doMultipart(ctx, "/sensors/maintenance/", token, mp, nil)
}
