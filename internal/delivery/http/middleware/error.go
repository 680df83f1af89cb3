package middleware

import (
	"errors"

	"talent-track/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	log *zap.Logger
}

func NewErrorMiddleware(log *zap.Logger) *ErrorMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &ErrorMiddleware{log: log}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.OriginalURL()))
				err = response.Error(c, fiber.StatusInternalServerError, "", nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := m.normalize(err)
		return response.Error(c, status, msg, data)
	}
}

// Internal causes are logged, never leaked to the client. Handlers that
// deliberately answer 5xx (a failed upstream is a 502, a disabled
// feature a 503) keep their status and message; only errors without a
// usable status collapse to a bare 500.
func (m *ErrorMiddleware) normalize(err error) (int, string, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status < fiber.StatusBadRequest || status > fiber.StatusNetworkAuthenticationRequired {
			m.log.Error("request failed", zap.Error(err))
			return fiber.StatusInternalServerError, "", nil
		}
		if status >= 500 {
			m.log.Error("request failed", zap.Error(err))
		}
		return status, appErr.Message, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status < fiber.StatusBadRequest || status > fiber.StatusNetworkAuthenticationRequired {
			m.log.Error("request failed", zap.Error(err))
			return fiber.StatusInternalServerError, "", nil
		}
		return status, fiberErr.Message, nil
	}

	m.log.Error("request failed", zap.Error(err))
	return fiber.StatusInternalServerError, "", nil
}
