package upstream

import (
	"context"
	"fmt"
	"io"

	"vrisa/internal/domain"
)

type LoginResult struct {
	AccessToken  string      `json:"access"`
	RefreshToken string      `json:"refresh"`
	User         domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := c.post(ctx, "/users/login/", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RegisterUserPayload is the self-registration form. Role is one of the
// self-selectable roles; the backend stores organizational roles as PENDING.
type RegisterUserPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
}

func (c *Client) RegisterUser(ctx context.Context, p RegisterUserPayload) (*domain.User, error) {
	var user domain.User
	if err := c.post(ctx, "/users/register/", "", p, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResearcherForm carries the researcher completion payload. The two
// credential images make it a multipart request.
type ResearcherForm struct {
	FullName       string
	Email          string
	DocumentType   string
	DocumentNumber string
	Affiliation    string
	CredentialOne  FileUpload
	CredentialTwo  FileUpload
}

type FileUpload struct {
	Filename string
	Content  io.Reader
}

func (c *Client) RegisterResearcher(ctx context.Context, token string, form ResearcherForm) error {
	mp := NewForm().
		Field("full_name", form.FullName).
		Field("email", form.Email).
		Field("document_type", form.DocumentType).
		Field("document_number", form.DocumentNumber).
		Field("affiliated_institution", form.Affiliation).
		File("credential_1", form.CredentialOne.Filename, form.CredentialOne.Content).
		File("credential_2", form.CredentialTwo.Filename, form.CredentialTwo.Content)
	return c.doMultipart(ctx, "/users/register/researcher/", token, mp, nil)
}

func (c *Client) GetUser(ctx context.Context, token string, id int64) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d/", id), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserPayload struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, p UpdateUserPayload) (*domain.User, error) {
	var user domain.User
	if err := c.put(ctx, fmt.Sprintf("/users/%d/", id), token, p, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Stats(ctx context.Context, token string) (*domain.PlatformStats, error) {
	var stats domain.PlatformStats
	if err := c.get(ctx, "/users/stats/", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) PendingResearchers(ctx context.Context, token string) ([]domain.ResearcherRequest, error) {
	var reqs []domain.ResearcherRequest
	if err := c.get(ctx, "/users/researchers/pending/", token, nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *Client) ApproveResearcher(ctx context.Context, token string, id int64) error {
	return c.post(ctx, fmt.Sprintf("/users/researchers/%d/approve/", id), token, nil, nil)
}

func (c *Client) RejectResearcher(ctx context.Context, token string, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.post(ctx, fmt.Sprintf("/users/researchers/%d/reject/", id), token, body, nil)
}
