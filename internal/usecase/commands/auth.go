package commands

import (
	"context"

	"cinema-booking/internal/infra"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/pkg/jwt"
	"cinema-booking/internal/pkg/password"
	"cinema-booking/internal/usecase/shared"
)

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (string, error)
}

type authCommandsImpl struct {
	reads shared.CommandReads
	jwt   *jwt.Service
}

func NewAuthCommands(reads shared.CommandReads, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{reads: reads, jwt: jwtService}
}

// Login deliberately collapses unknown-email and wrong-password into the
// same error so callers cannot probe which accounts exist.
func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (string, error) {
	if email == "" || rawPassword == "" {
		return "", errs.ErrInvalidCredentials
	}

	user, err := a.reads.UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(user.PasswordHash, rawPassword); err != nil {
		return "", errs.ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", errs.Wrap(err, "generating token")
	}
	return token, nil
}
