package authapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Classification is the public response triple for a failure signal.
type Classification struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

// ErrorResponse is the uniform envelope every non-2xx response carries.
// Stack is only populated outside production.
type ErrorResponse struct {
	Message   string `json:"message"`
	Status    int    `json:"status"`
	ErrorCode int    `json:"errorCode"`
	Stack     string `json:"stack,omitempty"`
}

// Classify maps a failure signal to its public response triple. It is a
// pure function over the closed Kind enumeration: anything that does
// not carry a known kind classifies as an internal fault. Classification
// never mutates state and is idempotent for a given signal.
func Classify(err error) Classification {
	kind, ok := KindOf(err)
	if !ok {
		return internalClassification()
	}

	switch kind {
	case KindNoAuthorizationToken:
		return Classification{Status: http.StatusUnauthorized, Message: "No authorization token was found", ErrorCode: 1}
	case KindMissingParameters:
		return Classification{Status: http.StatusBadRequest, Message: "Missing parameters", ErrorCode: 2}
	case KindNotAcceptable:
		return Classification{Status: http.StatusNotAcceptable, Message: "Not acceptable", ErrorCode: 3}
	case KindNotFound:
		return Classification{Status: http.StatusNotFound, Message: "Not Found", ErrorCode: 4}
	case KindForbidden:
		return Classification{Status: http.StatusForbidden, Message: "Forbidden", ErrorCode: 5}
	case KindInvalidValue:
		return Classification{Status: http.StatusBadRequest, Message: "Value is not valid", ErrorCode: 6}
	case KindBadRequest:
		return Classification{Status: http.StatusBadRequest, Message: "Bad Request", ErrorCode: 7}
	case KindCredentialsError:
		return Classification{Status: http.StatusUnauthorized, Message: "Wrong credentials", ErrorCode: 8}
	case KindInvalidEmail:
		return Classification{Status: http.StatusBadRequest, Message: "Please fill a valid email address", ErrorCode: 9}
	case KindDuplicateEmail:
		return Classification{Status: http.StatusConflict, Message: "This email address is already registered", ErrorCode: 10}
	case KindUnauthorized:
		return Classification{Status: http.StatusUnauthorized, Message: "Invalid credentials", ErrorCode: 11}
	case KindInactiveAccount:
		return Classification{Status: http.StatusUnauthorized, Message: "This account is not active", ErrorCode: 12}
	case KindExistingUser:
		return Classification{Status: http.StatusConflict, Message: "This user already exists", ErrorCode: 13}
	case KindIsLocked:
		return Classification{Status: http.StatusLocked, Message: "Dokument je zaključan", ErrorCode: 14}
	case KindTokenExpired:
		return Classification{Status: http.StatusUnauthorized, Message: "Token expired", ErrorCode: 15}
	case KindDeletionForbidden:
		return Classification{Status: http.StatusForbidden, Message: "Deletion forbidden", ErrorCode: 16}
	default:
		return internalClassification()
	}
}

func internalClassification() Classification {
	return Classification{
		Status:    http.StatusInternalServerError,
		Message:   "Oops, an error occurred",
		ErrorCode: 0,
	}
}

// NewErrorHandler builds the fiber error handler every route funnels
// through. Internal faults (code 0) are logged with the request context
// and raw error; all classified kinds are expected outcomes and stay
// silent.
func NewErrorHandler(cfg Config, logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		res := Classify(err)

		if res.ErrorCode == 0 {
			logger.Error("unclassified error on %s %s: %v", c.Method(), c.Path(), err)
		}

		body := ErrorResponse{
			Message:   res.Message,
			Status:    res.Status,
			ErrorCode: res.ErrorCode,
		}

		if !cfg.IsProduction() {
			body.Stack = err.Error()
		}

		return c.Status(res.Status).JSON(body)
	}
}
