package client

import "context"

// Client is the contract of the remote authentication API.
type Client interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
