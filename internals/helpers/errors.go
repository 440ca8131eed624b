package helper

import (
	stderrors "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindUpstream ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

// AppError membawa jenis kegagalan sampai ke lapisan HTTP.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func ValidationError(message string, fields map[string][]string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

// FieldError shortcut untuk satu field.
func FieldError(field, msg string) *AppError {
	return ValidationError(msg, map[string][]string{field: {msg}})
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// Upstream membungkus kegagalan DB/storage/pihak ketiga; pesannya tidak pernah dikirim ke klien.
func Upstream(err error, context string) *AppError {
	return &AppError{Kind: KindUpstream, Message: context, Err: errors.WithStack(err)}
}

// IsUniqueViolation mendeteksi SQLSTATE 23505 dari pgx.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == "23505"
}

// DBError menerjemahkan error gorm umum ke AppError.
func DBError(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMsg)
	case IsUniqueViolation(err):
		return Conflict(conflictMsg)
	default:
		return Upstream(err, "database error")
	}
}

const genericServerMessage = "Terjadi kesalahan pada server"

// FromError memetakan error apa pun ke envelope JSON.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ae *AppError
	if stderrors.As(err, &ae) {
		switch ae.Kind {
		case KindValidation:
			return JsonValidationError(c, ae.Message, ae.Fields)
		case KindUpstream:
			reportUpstream(c, ae)
			return JsonError(c, fiber.StatusInternalServerError, genericServerMessage)
		default:
			return JsonError(c, ae.Status(), ae.Message)
		}
	}

	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		if fe.Code >= 500 {
			reportUpstream(c, &AppError{Kind: KindUpstream, Message: fe.Message, Err: fe})
			return JsonError(c, fe.Code, genericServerMessage)
		}
		return JsonError(c, fe.Code, fe.Message)
	}

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	}
	if IsUniqueViolation(err) {
		return JsonError(c, fiber.StatusConflict, "Data sudah ada")
	}

	reportUpstream(c, &AppError{Kind: KindUpstream, Message: "unhandled error", Err: err})
	return JsonError(c, fiber.StatusInternalServerError, genericServerMessage)
}

func reportUpstream(c *fiber.Ctx, ae *AppError) {
	reqID, _ := c.Locals("reqid").(string)
	zap.L().Error(ae.Message,
		zap.String("reqid", reqID),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(ae.Err),
	)
	if ae.Err != nil && rollbar.Token() != "" {
		rollbar.Error(errors.Cause(ae.Err), map[string]interface{}{
			"reqid":   reqID,
			"path":    c.Path(),
			"context": ae.Message,
		})
	}
}

// ErrorHandler dipasang sebagai fiber.Config.ErrorHandler supaya panic/404 router memakai envelope yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}
