package registration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrisa/internal/domain"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type mockRegistrationAPI struct {
	institutions []upstream.InstitutionForm
	researchers  []upstream.ResearcherForm
	stations     []upstream.CreateStationPayload
}

func (m *mockRegistrationAPI) RegisterInstitution(_ context.Context, _ string, form upstream.InstitutionForm) error {
	m.institutions = append(m.institutions, form)
	return nil
}

func (m *mockRegistrationAPI) RegisterResearcher(_ context.Context, _ string, form upstream.ResearcherForm) error {
	m.researchers = append(m.researchers, form)
	return nil
}

func (m *mockRegistrationAPI) CreateStation(_ context.Context, _ string, p upstream.CreateStationPayload) (*domain.Station, error) {
	m.stations = append(m.stations, p)
	return &domain.Station{ID: 1, Name: p.Name, Status: domain.StationPending}, nil
}

func f64(v float64) *float64 { return &v }

func TestValidateStationBasics_Boundaries(t *testing.T) {
	svc := NewService(&mockRegistrationAPI{})

	cases := []struct {
		name     string
		lat, lon float64
		ok       bool
	}{
		{"lat lower bound", -90, 0, true},
		{"lat upper bound", 90, 0, true},
		{"lon lower bound", 0, -180, true},
		{"lon upper bound", 0, 180, true},
		{"lat above range", 95, 0, false},
		{"lat below range", -90.0001, 0, false},
		{"lon above range", 0, 180.5, false},
		{"lon below range", 0, -181, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ValidateStationBasics(StationBasicsForm{
				Name:      "Estacion Centro",
				Latitude:  f64(tc.lat),
				Longitude: f64(tc.lon),
			})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
			}
		})
	}
}

func TestValidateStationBasics_MissingCoordinates(t *testing.T) {
	svc := NewService(&mockRegistrationAPI{})
	err := svc.ValidateStationBasics(StationBasicsForm{Name: "X", Longitude: f64(0)})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "latitude", fieldErr.Field)
}

func TestSubmitStation_OutOfRangeNeverReachesBackend(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)
	sess := &session.Session{AccessToken: "tok"}

	_, err := svc.SubmitStation(context.Background(), sess, StationForm{
		StationBasicsForm: StationBasicsForm{Name: "X", Latitude: f64(95), Longitude: f64(0)},
	})
	require.Error(t, err)
	assert.Empty(t, api.stations)
}

func TestSubmitStation_UsesSessionInstitutionAndSeedSensor(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)
	instID := int64(4)
	sess := &session.Session{
		Role:          domain.RoleStationAdmin,
		RoleStatus:    domain.StatusPending,
		InstitutionID: &instID,
		AccessToken:   "tok",
	}

	st, err := svc.SubmitStation(context.Background(), sess, StationForm{
		StationBasicsForm: StationBasicsForm{Name: "Estacion Sur", Latitude: f64(4.6), Longitude: f64(-74.08)},
		Sensor:            SeedSensorForm{Model: "PMS5003", Manufacturer: "Plantower", SerialNumber: "SN-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StationPending, st.Status)

	require.Len(t, api.stations, 1)
	payload := api.stations[0]
	assert.Equal(t, int64(4), payload.InstitutionID)
	require.Len(t, payload.Sensors, 1)
	assert.Equal(t, "PMS5003", payload.Sensors[0].Model)

	// submission never flips the local role status
	assert.Equal(t, domain.StatusPending, sess.RoleStatus)
}

func TestRegisterInstitution_InvalidColorsBlockBeforeNetwork(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)
	sess := &session.Session{AccessToken: "tok"}

	err := svc.RegisterInstitution(context.Background(), sess, InstitutionRequest{
		Name:   "IDEAM",
		Colors: []string{"#00FF00", "verde", "azul"},
	}, nil)

	var colorErr *ColorError
	require.ErrorAs(t, err, &colorErr)
	assert.ElementsMatch(t, []string{"verde", "azul"}, colorErr.Invalid)
	assert.Empty(t, api.institutions)
}

func TestRegisterInstitution_NeedsAtLeastOneColor(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)

	err := svc.RegisterInstitution(context.Background(), &session.Session{}, InstitutionRequest{
		Name:   "IDEAM",
		Colors: []string{" ", ""},
	}, nil)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "colors", fieldErr.Field)
	assert.Empty(t, api.institutions)
}

func TestRegisterInstitution_ValidShortAndLongHex(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)

	err := svc.RegisterInstitution(context.Background(), &session.Session{AccessToken: "tok"}, InstitutionRequest{
		Name:   "CAR",
		Colors: []string{"#0F0", "#112233"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, api.institutions, 1)
	assert.Equal(t, []string{"#0F0", "#112233"}, api.institutions[0].Colors)
}

func TestCompleteResearcher_RequiresBothCredentials(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)
	sess := &session.Session{Email: "r@uni.example", AccessToken: "tok"}

	err := svc.CompleteResearcher(context.Background(), sess, upstream.ResearcherForm{
		FullName:       "Ana Diaz",
		DocumentNumber: "123",
		CredentialOne:  upstream.FileUpload{Filename: "a.png", Content: strings.NewReader("img")},
	})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "credentials", fieldErr.Field)
	assert.Empty(t, api.researchers)
}

func TestCompleteResearcher_FillsEmailFromSession(t *testing.T) {
	api := &mockRegistrationAPI{}
	svc := NewService(api)
	sess := &session.Session{Email: "r@uni.example", AccessToken: "tok"}

	err := svc.CompleteResearcher(context.Background(), sess, upstream.ResearcherForm{
		FullName:       "Ana Diaz",
		DocumentType:   "CC",
		DocumentNumber: "123",
		Affiliation:    "Universidad Nacional",
		CredentialOne:  upstream.FileUpload{Filename: "a.png", Content: strings.NewReader("img")},
		CredentialTwo:  upstream.FileUpload{Filename: "b.png", Content: strings.NewReader("img")},
	})
	require.NoError(t, err)
	require.Len(t, api.researchers, 1)
	assert.Equal(t, "r@uni.example", api.researchers[0].Email)
}
