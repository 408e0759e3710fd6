package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/repo"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream service failed")

	// ErrInvalidRefreshToken is the single error every refresh failure collapses to.
	ErrInvalidRefreshToken = fmt.Errorf("%w: refresh token invalid or expired, sign in again", ErrUnauthorized)
)

// storeErr maps repository errors onto the service taxonomy.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repo.ErrDuplicate):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, repo.ErrInUse):
		return fmt.Errorf("%w: %s is still in use", ErrConflict, what)
	default:
		return err
	}
}
