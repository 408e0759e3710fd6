package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     any
		fields []string
	}{
		{
			name: "valid user",
			in: transport.CreateUserRequest{
				Username: "alice1", Password: "password1", ConfirmPassword: "password1", Role: "admin",
			},
		},
		{
			name: "password mismatch",
			in: transport.CreateUserRequest{
				Username: "alice1", Password: "password1", ConfirmPassword: "password2", Role: "admin",
			},
			fields: []string{"confirmPassword"},
		},
		{
			name: "short username bad role",
			in: transport.CreateUserRequest{
				Username: "al", Password: "password1", ConfirmPassword: "password1", Role: "root",
			},
			fields: []string{"username", "role"},
		},
		{
			name: "password at byte limit",
			in: transport.CreateUserRequest{
				Username: "alice1", Password: strings.Repeat("a", 72), ConfirmPassword: strings.Repeat("a", 72), Role: "admin",
			},
		},
		{
			name: "multibyte password over byte limit",
			in: transport.CreateUserRequest{
				Username: "alice1", Password: strings.Repeat("é", 40), ConfirmPassword: strings.Repeat("é", 40), Role: "admin",
			},
			fields: []string{"password"},
		},
		{
			name:   "sign in without identifier",
			in:     transport.SignInRequest{Password: "x"},
			fields: []string{"identifier", "username"},
		},
		{
			name:   "change password mismatch",
			in:     transport.ChangePasswordRequest{OldPassword: "old", NewPassword: "newpassword", ConfirmNewPassword: "other"},
			fields: []string{"confirmNewPassword"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateStruct(tt.in)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := validateStruct(transport.ChangePasswordRequest{OldPassword: "old", NewPassword: "newpassword", ConfirmNewPassword: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmNewPassword must match newPassword")
}
