package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"vrisa/internal/domain"
)

// InstitutionForm is the self-service institution registration. The logo
// upload makes it multipart.
type InstitutionForm struct {
	Name    string
	Address string
	Colors  []string
	Logo    *FileUpload
}

func (c *Client) RegisterInstitution(ctx context.Context, token string, form InstitutionForm) error {
	mp := NewForm().
		Field("name", form.Name).
		Field("address", form.Address).
		Field("colors", strings.Join(form.Colors, ","))
	if form.Logo != nil {
		mp.File("logo", form.Logo.Filename, form.Logo.Content)
	}
	return c.doMultipart(ctx, "/institutions/register/", token, mp, nil)
}

// ListInstitutions filters by validation status when status is non-empty.
func (c *Client) ListInstitutions(ctx context.Context, token string, status domain.ValidationStatus) ([]domain.Institution, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var insts []domain.Institution
	if err := c.get(ctx, "/institutions/institutes/", token, q, &insts); err != nil {
		return nil, err
	}
	return insts, nil
}

func (c *Client) ApproveInstitutionRequest(ctx context.Context, token string, id int64) error {
	return c.post(ctx, fmt.Sprintf("/institutions/requests/%d/approve/", id), token, nil, nil)
}

func (c *Client) RejectInstitutionRequest(ctx context.Context, token string, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.post(ctx, fmt.Sprintf("/institutions/requests/%d/reject/", id), token, body, nil)
}
