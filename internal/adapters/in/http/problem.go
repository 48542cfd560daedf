package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContentTypeProblemJSON is the media type of RFC 7807 responses.
const ContentTypeProblemJSON = "application/problem+json"

const (
	TypeValidation    = "/problems/validation-error"
	TypeUnauthorized  = "/problems/unauthorized"
	TypeForbidden     = "/problems/forbidden"
	TypeNotFound      = "/problems/not-found"
	TypeConflict      = "/problems/conflict"
	TypeUnprocessable = "/problems/unprocessable-entity"
	TypeUnavailable   = "/problems/no-capable-kitchen"
	TypeInternal      = "/problems/internal-error"
	TypeHTTP          = "about:blank"
)

// Problem is an RFC 7807 problem details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

var errUnauthenticated = errors.New("request carries no actor")

// problemFor maps core errors onto HTTP statuses. Unknown errors become a
// 500 whose detail does not leak the cause.
func problemFor(err error) Problem {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return Problem{Type: TypeHTTP, Title: http.StatusText(httpErr.Code), Status: httpErr.Code, Detail: httpDetail(httpErr)}
	case errors.Is(err, errUnauthenticated):
		return newProblem(TypeUnauthorized, "Unauthorized", http.StatusUnauthorized, err)
	case errors.Is(err, errs.ErrPermissionDenied):
		return newProblem(TypeForbidden, "Forbidden", http.StatusForbidden, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return newProblem(TypeNotFound, "Resource Not Found", http.StatusNotFound, err)
	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrSerializationFailure),
		errors.Is(err, errs.ErrAlreadyExists):
		return newProblem(TypeConflict, "Conflict", http.StatusConflict, err)
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInsufficientBalance),
		errors.Is(err, errs.ErrFundClosed),
		errors.Is(err, errs.ErrDeferredPaymentDenied):
		return newProblem(TypeUnprocessable, "Unprocessable Entity", http.StatusUnprocessableEntity, err)
	case errors.Is(err, errs.ErrNoCapableResource):
		return newProblem(TypeUnavailable, "No Capable Kitchen", http.StatusServiceUnavailable, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return newProblem(TypeValidation, "Validation Error", http.StatusBadRequest, err)
	default:
		return Problem{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
	}
}

func newProblem(kind, title string, status int, err error) Problem {
	return Problem{Type: kind, Title: title, Status: status, Detail: err.Error()}
}

func httpDetail(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return ""
}

// ErrorHandler renders every error returned by a route as problem details.
// It replaces echo's default handler.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		p := problemFor(err)
		p.Instance = c.Request().URL.Path
		if p.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", p.Instance),
				zap.Int("status", p.Status),
				zap.Error(err))
		}

		c.Response().Header().Set(echo.HeaderContentType, ContentTypeProblemJSON)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(p.Status)
		} else {
			err = c.JSON(p.Status, p)
		}
		if err != nil {
			logger.Warn("failed to write problem response", zap.Error(err))
		}
	}
}
