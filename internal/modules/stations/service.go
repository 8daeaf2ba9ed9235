package stations

import (
	"context"

	"vrisa/internal/domain"
	"vrisa/internal/lifecycle"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type stationAPI interface {
	ListStations(ctx context.Context, token string, f upstream.StationFilter) ([]domain.Station, error)
	GetStation(ctx context.Context, token string, id int64) (*domain.Station, error)
	ListSensors(ctx context.Context, token string, stationID int64) ([]domain.Sensor, error)
	CreateSensor(ctx context.Context, token string, p upstream.CreateSensorPayload) (*domain.Sensor, error)
	ListMaintenance(ctx context.Context, token string, sensorID int64) ([]domain.MaintenanceLog, error)
	CreateMaintenance(ctx context.Context, token string, form upstream.MaintenanceForm) error
}

// Service serves the station panels. Super admins see the whole network;
// everyone institution-scoped only sees their institution's stations.
type Service struct {
	api stationAPI
}

func NewService(api stationAPI) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, sess *session.Session, status domain.StationStatus) ([]domain.Station, error) {
	filter := upstream.StationFilter{Status: status}
	if lifecycle.IsInstitutionScoped(sess.Role, sess.InstitutionID) && sess.Role != domain.RoleSuperAdmin {
		filter.InstitutionID = sess.InstitutionID
	}
	return s.api.ListStations(ctx, sess.AccessToken, filter)
}

func (s *Service) Get(ctx context.Context, sess *session.Session, id int64) (*domain.Station, error) {
	st, err := s.api.GetStation(ctx, sess.AccessToken, id)
	if err != nil {
		return nil, err
	}
	if len(st.Sensors) == 0 {
		sensors, err := s.api.ListSensors(ctx, sess.AccessToken, id)
		if err != nil {
			return nil, err
		}
		st.Sensors = sensors
	}
	return st, nil
}

func (s *Service) AddSensor(ctx context.Context, sess *session.Session, stationID int64, p upstream.CreateSensorPayload) (*domain.Sensor, error) {
	p.StationID = stationID
	return s.api.CreateSensor(ctx, sess.AccessToken, p)
}

func (s *Service) Maintenance(ctx context.Context, sess *session.Session, sensorID int64) ([]domain.MaintenanceLog, error) {
	return s.api.ListMaintenance(ctx, sess.AccessToken, sensorID)
}

func (s *Service) AddMaintenance(ctx context.Context, sess *session.Session, form upstream.MaintenanceForm) error {
	return s.api.CreateMaintenance(ctx, sess.AccessToken, form)
}
