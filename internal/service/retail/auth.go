package retail

import (
	"context"
	"net/http"

	"retailgenie/gateway/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (c *Client) Login(ctx context.Context, email, password string) (model.AuthResponse, error) {
	return call[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
}

func (c *Client) Register(ctx context.Context, email, password, name string) (model.AuthResponse, error) {
	return call[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/register", registerRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
}
