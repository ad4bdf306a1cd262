package auth

import "github.com/growthlens/server/growthlens/users"

// returned after a successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

type UserResponse struct {
	User *users.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
