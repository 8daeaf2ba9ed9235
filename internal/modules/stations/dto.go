package stations

type SensorRequest struct {
	Model        string `json:"model" binding:"required"`
	Manufacturer string `json:"manufacturer" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
	InstalledAt  string `json:"installation_date"`
}
