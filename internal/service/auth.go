package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/comic_catalog/internal/events"
	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/tokens"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error)
	SaveSession(ctx context.Context, userID, refreshToken string) error
	SwapRefreshToken(ctx context.Context, userID, oldToken, newToken string) (bool, error)
	ClearSession(ctx context.Context, token string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) bool
}

type AuthService struct {
	Repo   UserStore
	Tokens *tokens.Issuer
	Hasher PasswordHasher
	Events events.Publisher
	// RotateRefresh replaces the stored refresh token on every refresh.
	RotateRefresh bool
}

type SignInResult struct {
	User    *models.User
	Access  tokens.Token
	Refresh tokens.Token
}

type RefreshResult struct {
	Access tokens.Token
	// Refresh is set only when rotation is on.
	Refresh *tokens.Token
}

// SignIn looks the user up by email when identifier contains "@", by username otherwise.
func (s *AuthService) SignIn(ctx context.Context, req transport.SignInRequest) (*SignInResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin")

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(req.Login())
	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.Repo.GetUserByEmail(ctx, identifier)
		err = storeErr(err, "no user with this email")
	} else {
		user, err = s.Repo.GetUserByUsername(ctx, identifier)
		err = storeErr(err, "no user with this username")
	}
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Check(user.PasswordHash, req.Password) {
		l.Info("signin_rejected", "user_id", user.ID, "reason", "password mismatch")
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	access, err := s.Tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.Tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.Repo.SaveSession(ctx, user.ID, refresh.Value); err != nil {
		return nil, storeErr(err, "user")
	}
	user.IsOnline = true
	user.RefreshToken = &refresh.Value

	publish(ctx, s.Events, events.TopicUserEvents, user.ID,
		events.New(events.UserSignedIn, events.UserEvent{UserID: user.ID, Username: user.Username}))

	return &SignInResult{User: user, Access: access, Refresh: refresh}, nil
}

// Refresh mints a new access token for the holder of a stored refresh token.
// Every failure, including an unknown token, is reported as ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrValidation)
	}

	user, err := s.Repo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if err = storeErr(err, "refresh token holder"); errors.Is(err, ErrNotFound) {
			l.Info("refresh_rejected", "reason", "token not stored")
			return nil, fmt.Errorf("%w (%w)", ErrInvalidRefreshToken, ErrNotFound)
		}
		return nil, err
	}

	claims, err := s.Tokens.Verify(refreshToken, tokens.Refresh)
	if err != nil {
		l.Info("refresh_rejected", "user_id", user.ID, "reason", err.Error())
		return nil, ErrInvalidRefreshToken
	}
	if claims.UserID != user.ID {
		l.Warn("refresh_rejected", "user_id", user.ID, "reason", "subject mismatch")
		return nil, ErrInvalidRefreshToken
	}

	// role comes from the record, never from the refresh claims
	access, err := s.Tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	res := &RefreshResult{Access: access}

	if s.RotateRefresh {
		next, err := s.Tokens.IssueRefreshToken(user.ID)
		if err != nil {
			return nil, fmt.Errorf("issue refresh token: %w", err)
		}
		swapped, err := s.Repo.SwapRefreshToken(ctx, user.ID, refreshToken, next.Value)
		if err != nil {
			return nil, err
		}
		if !swapped {
			l.Warn("refresh_rejected", "user_id", user.ID, "reason", "token replaced concurrently")
			return nil, ErrInvalidRefreshToken
		}
		res.Refresh = &next
	}

	return res, nil
}

// SignOut ends the session holding refreshToken. Repeating it yields ErrNotFound.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("%w: no session", ErrUnauthorized)
	}

	user, err := s.Repo.ClearSession(ctx, refreshToken)
	if err != nil {
		return storeErr(err, "no session for this token")
	}

	publish(ctx, s.Events, events.TopicUserEvents, user.ID,
		events.New(events.UserSignedOut, events.UserEvent{UserID: user.ID, Username: user.Username}))
	return nil
}

func (s *AuthService) Profile(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.verifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}

// ChangePassword replaces the password hash. Issued tokens stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, accessToken string, req transport.ChangePasswordRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password")

	claims, err := s.verifyAccess(accessToken)
	if err != nil {
		return err
	}

	user, err := s.Repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return storeErr(err, "user")
	}

	if !s.Hasher.Check(user.PasswordHash, req.OldPassword) {
		l.Info("change_password_rejected", "user_id", user.ID, "reason", "old password mismatch")
		return fmt.Errorf("%w: old password does not match", ErrUnauthorized)
	}

	if err := validateStruct(req); err != nil {
		return err
	}

	pwHash, err := hashPassword(s.Hasher, "newPassword", req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePasswordHash(ctx, user.ID, pwHash); err != nil {
		return storeErr(err, "user")
	}

	publish(ctx, s.Events, events.TopicUserEvents, user.ID,
		events.New(events.UserPasswordChanged, events.UserEvent{UserID: user.ID, Username: user.Username}))
	return nil
}

func (s *AuthService) verifyAccess(accessToken string) (tokens.Claims, error) {
	claims, err := s.Tokens.Verify(accessToken, tokens.Access)
	if err != nil {
		return tokens.Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return claims, nil
}

func publish(ctx context.Context, p events.Publisher, topic, key string, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
