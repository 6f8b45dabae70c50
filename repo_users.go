package authapi

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ConsumeResetTokenSQL swaps the password hash and clears the reset
// token in one statement. The WHERE on reset_token makes consumption
// atomic: two concurrent resets against the same code cannot both match.
var ConsumeResetTokenSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"reset_token" = NULL,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."reset_token" = ?
AND "usr"."reset_token" IS NOT NULL
RETURNING *;`

// UserStore is the credential store the flows depend on. The bun
// implementation below is the default; tests swap in a mock.
type UserStore interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, code string) error
	ConsumeResetToken(ctx context.Context, code, passwordHash string) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type users struct {
	db *bun.DB
}

var _ UserStore = (*users)(nil)

// NewUserStore returns the bun-backed credential store.
func NewUserStore(db *bun.DB) UserStore {
	return &users{db: db}
}

func (a *users) Create(ctx context.Context, user *User) (*User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = NormalizeEmail(user.Email)

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if _, err := a.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "create user")
	}

	return user, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := a.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapSelectErr(err, "get user by email")
	}

	return user, nil
}

func (a *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := &User{}
	err := a.db.NewSelect().
		Model(user).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapSelectErr(err, "get user by id")
	}

	return user, nil
}

func (a *users) SetResetToken(ctx context.Context, id uuid.UUID, code string) error {
	res, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("reset_token = ?", code).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "set reset token")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (a *users) ConsumeResetToken(ctx context.Context, code, passwordHash string) (*User, error) {
	user := &User{}
	err := a.db.NewRaw(ConsumeResetTokenSQL, passwordHash, code).Scan(ctx, user)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "consume reset token")
	}

	return user, nil
}

func (a *users) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "update password")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}

func wrapSelectErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
