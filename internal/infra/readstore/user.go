package readstore

import (
	"context"

	"cinema-booking/internal/infra"
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/pkg/pgconv"
	"cinema-booking/internal/usecase/shared"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const userByEmailSQL = `
SELECT id, email, password_hash, role
FROM users
WHERE email = $1`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, userByEmailSQL, email).Scan(
		&snap.ID,
		&snap.Email,
		&snap.PasswordHash,
		&snap.Role,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}
