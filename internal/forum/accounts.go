package forum

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

// Accounts registers users, checks credentials and verifies bearer tokens.
type Accounts struct {
	store  UserStore
	tokens *auth.Tokens
}

func NewAccounts(store UserStore, tokens *auth.Tokens) *Accounts {
	return &Accounts{store: store, tokens: tokens}
}

type registration struct {
	Username string `validate:"required,min=3,max=50,username"`
	Email    string `validate:"required,max=100,email"`
	Password string `validate:"required,min=6,max=72"`
}

func (a *Accounts) Register(ctx context.Context, username, email, password string) (models.AuthResponse, error) {
	in := registration{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := check(in); err != nil {
		return models.AuthResponse{}, err
	}

	nameTaken, emailTaken, err := a.store.UserTaken(ctx, in.Username, in.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if nameTaken {
		return models.AuthResponse{}, apperr.Conflict("username_taken", "Username already exists")
	}
	if emailTaken {
		return models.AuthResponse{}, apperr.Conflict("email_taken", "Email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.AuthResponse{}, apperr.StoreFailure("hash password", err)
	}

	user := models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := a.store.CreateUser(ctx, &user); err != nil {
		return models.AuthResponse{}, err
	}
	return a.session(user)
}

// Authenticate fails with NotFound for an unknown username and
// InvalidCredential for a wrong password; both surface as 400.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (models.AuthResponse, error) {
	user, err := a.store.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.Kind == apperr.KindNotFound {
			return models.AuthResponse{}, e.WithStatus(http.StatusBadRequest)
		}
		return models.AuthResponse{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.AuthResponse{}, apperr.InvalidCredential("Invalid password")
	}
	return a.session(user)
}

// VerifyToken checks a raw bearer token without touching the store. A
// missing token is Unauthorized; anything unverifiable is Forbidden.
func (a *Accounts) VerifyToken(raw string) (auth.Identity, error) {
	if raw == "" {
		return auth.Identity{}, apperr.Unauthorized("Authorization token required")
	}
	id, err := a.tokens.Verify(raw)
	if errors.Is(err, auth.ErrExpiredToken) {
		return auth.Identity{}, apperr.Forbidden("Token expired")
	}
	if err != nil {
		return auth.Identity{}, apperr.Forbidden("Invalid token")
	}
	return id, nil
}

func (a *Accounts) Me(ctx context.Context, id auth.Identity) (models.User, error) {
	if err := requireIdentity(id); err != nil {
		return models.User{}, err
	}
	return a.store.UserByID(ctx, id.UserID)
}

func (a *Accounts) session(user models.User) (models.AuthResponse, error) {
	token, err := a.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return models.AuthResponse{}, apperr.StoreFailure("issue token", err)
	}
	return models.AuthResponse{Token: token, User: user}, nil
}
