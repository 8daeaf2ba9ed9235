package domain

import "time"

type StationStatus string

const (
	StationPending     StationStatus = "PENDING"
	StationActive      StationStatus = "ACTIVE"
	StationInactive    StationStatus = "INACTIVE"
	StationMaintenance StationStatus = "MAINTENANCE"
	StationRejected    StationStatus = "REJECTED"
)

type Station struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	Address       string        `json:"address,omitempty"`
	InstitutionID int64         `json:"institution_id"`
	Status        StationStatus `json:"operative_status"`
	Sensors       []Sensor      `json:"sensors,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
