package newsapi

import (
	"context"
	"encoding/json"
	"net/http"

	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var res LoginResponse
	err := c.doJSON(ctx, "Login", http.MethodPost, "/auth/login", nil, creds, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, oops.New(nil, "login response had no token")
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, reg RegisterRequest) (*LoginResponse, error) {
	var res LoginResponse
	err := c.doJSON(ctx, "Register", http.MethodPost, "/auth/register", nil, reg, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var raw json.RawMessage
	err := c.doJSON(ctx, "Me", http.MethodGet, "/auth/me", nil, nil, &raw)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, oops.New(err, "failed to unmarshal user")
	}
	return &user, nil
}
