package domain

import "time"

// Variable is a measured pollutant or meteorological variable (PM2.5, O3, ...).
type Variable struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// AQISnapshot is the backend-computed air quality index for one station.
// The index itself is never computed here.
type AQISnapshot struct {
	StationID   int64     `json:"station_id"`
	StationName string    `json:"station_name,omitempty"`
	Value       float64   `json:"value"`
	Category    string    `json:"category"`
	Dominant    string    `json:"dominant_pollutant,omitempty"`
	MeasuredAt  time.Time `json:"measured_at"`
}

type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type HistorySeries struct {
	StationID    int64          `json:"station_id"`
	VariableCode string         `json:"variable_code"`
	Points       []HistoryPoint `json:"points"`
}
