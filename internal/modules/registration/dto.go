package registration

// StationBasicsForm is step 1 of the station wizard. Coordinates are
// pointers so a missing field is distinguishable from zero.
type StationBasicsForm struct {
	Name          string   `json:"name" binding:"required"`
	Latitude      *float64 `json:"latitude" binding:"required"`
	Longitude     *float64 `json:"longitude" binding:"required"`
	Address       string   `json:"address"`
	InstitutionID *int64   `json:"institution_id"`
}

// SeedSensorForm is step 2: the single sensor a new station starts with.
type SeedSensorForm struct {
	Model        string `json:"model" binding:"required"`
	Manufacturer string `json:"manufacturer" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
	InstalledAt  string `json:"installation_date"`
}

type StationForm struct {
	StationBasicsForm
	Sensor SeedSensorForm `json:"sensor"`
}

type InstitutionRequest struct {
	Name    string   `json:"name" validate:"required"`
	Address string   `json:"address"`
	Colors  []string `json:"colors" validate:"required,min=1"`
}
