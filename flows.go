package authapi

import (
	"context"

	"github.com/google/uuid"
)

// AuthFlows is the auth flow engine: every operation is one pass of
// validation, store lookup, state mutation and token issuance. The
// validation order is fixed (presence, existence, business state,
// credential) so error precedence stays deterministic regardless of
// store contents.
type AuthFlows struct {
	store  UserStore
	tokens *TokenService
	mailer Mailer
	logger Logger
}

// NewAuthFlows wires the engine. The mailer may be nil, in which case
// recovery notifications are dropped.
func NewAuthFlows(store UserStore, tokens *TokenService, mailer Mailer) *AuthFlows {
	if mailer == nil {
		mailer = NoopMailer{}
	}
	return &AuthFlows{
		store:  store,
		tokens: tokens,
		mailer: mailer,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the engine.
func (f *AuthFlows) WithLogger(logger Logger) *AuthFlows {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// SignInResult carries the issued token and the sanitized user record.
type SignInResult struct {
	Token string
	User  *User
}

// SignIn authenticates an email/password pair and issues a fresh token.
func (f *AuthFlows) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingParameters
	}

	user, err := f.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrForbidden
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	token, err := f.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &SignInResult{Token: token, User: user.Sanitized()}, nil
}

// ForgotPassword generates a recovery code, persists it on the record
// and hands it to the notification sink. Delivery is fire-and-forget:
// a sink failure is logged, never surfaced as a flow error.
func (f *AuthFlows) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingParameters
	}

	user, err := f.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	code := GenerateResetCode()
	if err := f.store.SetResetToken(ctx, user.ID, code); err != nil {
		return err
	}

	go func(to, name, code string) {
		if err := f.mailer.SendPasswordReset(context.Background(), to, name, code); err != nil {
			f.logger.Warn("reset notification for %s failed: %v", to, err)
		}
	}(user.Email, user.Name, code)

	return nil
}

// ResetPassword consumes a recovery code: the new hash is written and
// the code cleared in a single atomic store update, so a code can only
// ever be consumed once.
func (f *AuthFlows) ResetPassword(ctx context.Context, resetToken, password, passwordConfirm string) (string, error) {
	if password == "" || passwordConfirm == "" || resetToken == "" {
		return "", ErrMissingParameters
	}

	if password != passwordConfirm {
		return "", ErrInvalidValue
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := f.store.ConsumeResetToken(ctx, resetToken, hash)
	if err != nil {
		return "", err
	}

	return f.tokens.Issue(user.ID.String())
}

// RefreshToken exchanges a bearer token, expired or not, for a fresh
// one, provided the user still exists. Decode failure and a vanished
// user are deliberately indistinguishable in the result.
func (f *AuthFlows) RefreshToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingParameters
	}

	userID, err := f.decodeForRefresh(token)
	if err != nil {
		f.logger.Debug("refresh token decode failed: %v", err)
		return "", ErrNotFound
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return "", ErrNotFound
	}

	user, err := f.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	return f.tokens.Issue(user.ID.String())
}

// decodeForRefresh accepts expired tokens: refresh exists precisely so
// a client can trade in a token past its lifetime. Signature and shape
// are still enforced.
func (f *AuthFlows) decodeForRefresh(token string) (string, error) {
	userID, err := f.tokens.Decode(token)
	if err == nil {
		return userID, nil
	}

	if kind, ok := KindOf(err); ok && kind == KindTokenExpired {
		return f.tokens.decodeExpired(token)
	}

	return "", err
}

// ChangePassword rotates the password of an already authenticated user
// after re-checking the old one, then issues a fresh token.
func (f *AuthFlows) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, newPasswordConfirm string) (string, error) {
	if oldPassword == "" || newPassword == "" {
		return "", ErrMissingParameters
	}

	if newPassword != newPasswordConfirm {
		return "", ErrInvalidValue
	}

	user, err := f.store.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := ComparePasswordAndHash(oldPassword, user.PasswordHash); err != nil {
		return "", err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", err
	}

	if err := f.store.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", err
	}

	return f.tokens.Issue(user.ID.String())
}
