package session

import (
	"context"

	"doit/models"
)

// Service owns the authenticated identity for each client scope. The
// credential lives in a single durable slot, so a user login and an admin
// login can never coexist.
type Service interface {
	// Restore resolves the session from the durable credential, if any.
	// A rejected credential (401/403) is destructively cleared; transient
	// failures leave credential and session untouched for a later retry.
	Restore(ctx context.Context, scope string) (*models.Session, error)

	// Current returns the session from the durable record without calling
	// the backend. Nil when no credential is stored.
	Current(ctx context.Context, scope string) (*models.Session, error)

	Login(ctx context.Context, scope, mobNumber, password, role string) (*models.Session, error)
	Signup(ctx context.Context, scope string, req SignupInput) (*models.Session, error)

	// AdminLogin reports success as a bare boolean; bad credentials do not
	// surface as an error.
	AdminLogin(ctx context.Context, scope, adminID, password string) bool

	Logout(ctx context.Context, scope string) error
}

// SignupInput carries a registration request into the auth backend.
type SignupInput struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	MobNumber string `json:"mobnumber" binding:"required"`
	Role      string `json:"role" binding:"required"`
}
