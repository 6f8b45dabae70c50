package authapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/nexa-labs/go-auth-api/middleware/jwtware"
)

// Locals keys for the authenticated request identity.
const (
	ContextKeyUserID = "userID"
	ContextKeyUser   = "user"
)

// AuthController exposes the six operations over JSON.
type AuthController struct {
	Flows  *AuthFlows
	Store  UserStore
	Tokens *TokenService
	Logger Logger
}

// NewAuthController wires the controller.
func NewAuthController(flows *AuthFlows, store UserStore, tokens *TokenService) *AuthController {
	if flows == nil || store == nil || tokens == nil {
		panic("Missing dependencies in auth controller...")
	}
	return &AuthController{
		Flows:  flows,
		Store:  store,
		Tokens: tokens,
		Logger: defLogger{},
	}
}

// WithLogger overrides the controller logger.
func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterRoutes mounts every route on the app. Protected routes pass
// through the token gate and then the user gate, in that order.
func (a *AuthController) RegisterRoutes(app *fiber.App) {
	app.Post("/signin", a.SignIn)
	app.Post("/forgot-password", a.ForgotPassword)
	app.Post("/reset-password/:resetToken", a.ResetPassword)
	app.Post("/refresh-token", a.RefreshToken)

	gate := jwtware.New(jwtware.Config{
		Decoder:      a.Tokens,
		ContextKey:   ContextKeyUserID,
		ErrorHandler: a.gateErrorHandler,
	})

	app.Post("/change-password", gate, a.RequireUser, a.ChangePassword)
	app.Get("/profile", gate, a.RequireUser, a.GetProfile)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// gateErrorHandler translates transport-level token failures into the
// public taxonomy before the flows are ever reached: a missing or
// unusable authorization header is code 1, an expired token keeps its
// distinct code, anything else is a generic authentication failure.
func (a *AuthController) gateErrorHandler(c *fiber.Ctx, err error) error {
	if goerrors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return ErrNoAuthorizationToken
	}

	if kind, ok := KindOf(err); ok && kind == KindTokenExpired {
		return err
	}

	return ErrUnauthorized
}

// RequireUser is the access gate: the decoded token bearer must map to
// an existing, active record. Failure is NotFound on purpose, so a
// deactivated account is indistinguishable from a deleted one.
func (a *AuthController) RequireUser(c *fiber.Ctx) error {
	raw, _ := c.Locals(ContextKeyUserID).(string)

	id, err := uuid.Parse(raw)
	if err != nil {
		return ErrNotFound
	}

	user, err := a.Store.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return ErrNotFound
	}

	c.Locals(ContextKeyUser, user.Sanitized())

	return c.Next()
}

// SignInRequest payload
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) SignIn(c *fiber.Ctx) error {
	payload := new(SignInRequest)

	if err := c.BodyParser(payload); err != nil {
		return ErrBadRequest
	}

	if err := payload.Validate(); err != nil {
		return ErrMissingParameters
	}

	res, err := a.Flows.SignIn(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Successfully signed in",
		"token":   res.Token,
		"results": res.User,
	})
}

// ForgotPasswordRequest payload
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
	)
}

func (a *AuthController) ForgotPassword(c *fiber.Ctx) error {
	payload := new(ForgotPasswordRequest)

	if err := c.BodyParser(payload); err != nil {
		return ErrBadRequest
	}

	if err := payload.Validate(); err != nil {
		return ErrMissingParameters
	}

	if err := a.Flows.ForgotPassword(c.Context(), payload.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Successfully generated reset token",
	})
}

// ResetPasswordRequest payload
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// Validate will run validation rules
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.PasswordConfirm, validation.Required),
	)
}

func (a *AuthController) ResetPassword(c *fiber.Ctx) error {
	resetToken := c.Params("resetToken")

	payload := new(ResetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return ErrBadRequest
	}

	if err := payload.Validate(); err != nil {
		return ErrMissingParameters
	}

	token, err := a.Flows.ResetPassword(c.Context(), resetToken, payload.Password, payload.PasswordConfirm)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
		"token":   token,
	})
}

// RefreshTokenRequest payload
type RefreshTokenRequest struct {
	Token string `json:"token"`
}

// Validate will run validation rules
func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

func (a *AuthController) RefreshToken(c *fiber.Ctx) error {
	payload := new(RefreshTokenRequest)

	if err := c.BodyParser(payload); err != nil {
		return ErrBadRequest
	}

	if err := payload.Validate(); err != nil {
		return ErrMissingParameters
	}

	token, err := a.Flows.RefreshToken(c.Context(), payload.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Successfully refreshed token",
		"token":   token,
	})
}

// ChangePasswordRequest payload
type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	NewPasswordConfirm string `json:"newPasswordConfirm"`
}

// Validate will run validation rules
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
}

func (a *AuthController) ChangePassword(c *fiber.Ctx) error {
	user, ok := c.Locals(ContextKeyUser).(*User)
	if !ok {
		return ErrNotFound
	}

	payload := new(ChangePasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return ErrBadRequest
	}

	if err := payload.Validate(); err != nil {
		return ErrMissingParameters
	}

	token, err := a.Flows.ChangePassword(
		c.Context(),
		user.ID,
		payload.OldPassword,
		payload.NewPassword,
		payload.NewPasswordConfirm,
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password successfully updated",
		"token":   token,
	})
}

func (a *AuthController) GetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals(ContextKeyUser).(*User)
	if !ok {
		return ErrNotFound
	}

	return c.JSON(fiber.Map{
		"message": "Successfully returned profile",
		"results": user,
	})
}
