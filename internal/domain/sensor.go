package domain

import "time"

type SensorStatus string

const (
	SensorActive      SensorStatus = "ACTIVE"
	SensorInactive    SensorStatus = "INACTIVE"
	SensorMaintenance SensorStatus = "MAINTENANCE"
)

type Sensor struct {
	ID           int64        `json:"id"`
	Model        string       `json:"model"`
	Manufacturer string       `json:"manufacturer"`
	SerialNumber string       `json:"serial_number"`
	InstalledAt  string       `json:"installation_date,omitempty"`
	Status       SensorStatus `json:"status"`
	StationID    int64        `json:"station_id"`
}

// MaintenanceLog is append-only from the dashboard's point of view.
type MaintenanceLog struct {
	ID             int64     `json:"id"`
	SensorID       int64     `json:"sensor_id"`
	Date           string    `json:"date"`
	Description    string    `json:"description"`
	CertificateURL string    `json:"certificate_url,omitempty"`
	Technician     string    `json:"technician"`
	CreatedAt      time.Time `json:"created_at"`
}
