package gateway

import (
	"context"
	"net/http"

	"forkful/models"
)

func (g *Gateway) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out models.AuthResponse
	if err := g.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) Signup(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out models.AuthResponse
	if err := g.do(ctx, http.MethodPost, "/auth/signup", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
