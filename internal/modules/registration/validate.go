package registration

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is a pre-network validation failure; the request never reaches
// the backend while one of these stands.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCoordinates enforces the WGS84 ranges, boundaries included.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return &FieldError{Field: "latitude", Message: fmt.Sprintf("latitude %v is outside [-90, 90]", lat)}
	}
	if lon < -180 || lon > 180 {
		return &FieldError{Field: "longitude", Message: fmt.Sprintf("longitude %v is outside [-180, 180]", lon)}
	}
	return nil
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ColorError enumerates every rejected color so the form can highlight them
// all at once.
type ColorError struct {
	Invalid []string `json:"invalid_colors"`
}

func (e *ColorError) Error() string {
	return "invalid hex colors: " + strings.Join(e.Invalid, ", ")
}

// ValidateColors requires at least one valid hex color. Blank entries are
// dropped; malformed ones fail the whole set.
func ValidateColors(colors []string) ([]string, error) {
	var valid, invalid []string
	for _, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if hexColorRe.MatchString(c) {
			valid = append(valid, c)
		} else {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) > 0 {
		return nil, &ColorError{Invalid: invalid}
	}
	if len(valid) == 0 {
		return nil, &FieldError{Field: "colors", Message: "at least one hex color is required"}
	}
	return valid, nil
}
