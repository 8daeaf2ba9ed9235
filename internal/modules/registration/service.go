package registration

import (
	"context"
	"fmt"

	"vrisa/internal/domain"
	pkgvalidator "vrisa/internal/pkg/validator"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type registrationAPI interface {
	RegisterInstitution(ctx context.Context, token string, form upstream.InstitutionForm) error
	RegisterResearcher(ctx context.Context, token string, form upstream.ResearcherForm) error
	CreateStation(ctx context.Context, token string, p upstream.CreateStationPayload) (*domain.Station, error)
}

// Service relays completion forms. It never flips the caller's stored role
// status; the new status only arrives through the next user refetch, after
// an admin decision.
type Service struct {
	api registrationAPI
}

func NewService(api registrationAPI) *Service {
	return &Service{api: api}
}

// ValidateStationBasics is the step 1 gate. It performs no network calls;
// a range failure keeps the wizard on step 1.
func (s *Service) ValidateStationBasics(form StationBasicsForm) error {
	if form.Latitude == nil {
		return &FieldError{Field: "latitude", Message: "latitude is required"}
	}
	if form.Longitude == nil {
		return &FieldError{Field: "longitude", Message: "longitude is required"}
	}
	return ValidateCoordinates(*form.Latitude, *form.Longitude)
}

// SubmitStation revalidates both steps and creates the station with its seed
// sensor in one backend call. The new station comes back PENDING.
func (s *Service) SubmitStation(ctx context.Context, sess *session.Session, form StationForm) (*domain.Station, error) {
	if err := s.ValidateStationBasics(form.StationBasicsForm); err != nil {
		return nil, err
	}

	instID := form.InstitutionID
	if instID == nil {
		instID = sess.InstitutionID
	}
	if instID == nil {
		return nil, &FieldError{Field: "institution_id", Message: "an owning institution is required"}
	}

	return s.api.CreateStation(ctx, sess.AccessToken, upstream.CreateStationPayload{
		Name:          form.Name,
		Latitude:      *form.Latitude,
		Longitude:     *form.Longitude,
		Address:       form.Address,
		InstitutionID: *instID,
		Sensors: []upstream.CreateSensorInput{{
			Model:        form.Sensor.Model,
			Manufacturer: form.Sensor.Manufacturer,
			SerialNumber: form.Sensor.SerialNumber,
			InstalledAt:  form.Sensor.InstalledAt,
		}},
	})
}

// RegisterInstitution validates the brand colors before any network call; a
// set without one valid hex color blocks the submission with the offending
// entries enumerated.
func (s *Service) RegisterInstitution(ctx context.Context, sess *session.Session, req InstitutionRequest, logo *upstream.FileUpload) error {
	if fields := pkgvalidator.Validate(req); len(fields) > 0 {
		for _, field := range []string{"name", "colors"} {
			if tag, ok := fields[field]; ok {
				return &FieldError{Field: field, Message: fmt.Sprintf("failed %s validation", tag)}
			}
		}
	}
	colors, err := ValidateColors(req.Colors)
	if err != nil {
		return err
	}

	return s.api.RegisterInstitution(ctx, sess.AccessToken, upstream.InstitutionForm{
		Name:    req.Name,
		Address: req.Address,
		Colors:  colors,
		Logo:    logo,
	})
}

// CompleteResearcher requires both credential images; the backend keeps the
// request PENDING until an admin decides.
func (s *Service) CompleteResearcher(ctx context.Context, sess *session.Session, form upstream.ResearcherForm) error {
	if form.FullName == "" {
		return &FieldError{Field: "full_name", Message: "full name is required"}
	}
	if form.DocumentNumber == "" {
		return &FieldError{Field: "document_number", Message: "document number is required"}
	}
	if form.CredentialOne.Content == nil || form.CredentialTwo.Content == nil {
		return &FieldError{Field: "credentials", Message: "two credential images are required"}
	}
	if form.Email == "" {
		form.Email = sess.Email
	}
	return s.api.RegisterResearcher(ctx, sess.AccessToken, form)
}
