// Package apperror berisi taksonomi error domain yang dipakai semua service.
package apperror

import (
	"errors"
	"fmt"
)

// Code adalah kode error yang bisa dibaca mesin.
type Code string

const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeInvalidState  Code = "INVALID_STATE"
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeQuotaExceeded Code = "QUOTA_EXCEEDED"
	CodeInternal      Code = "INTERNAL"
)

// Error adalah error domain dengan kode dan (opsional) detail per-field.
type Error struct {
	Code    Code
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is membuat errors.Is(err, &Error{Code: X}) cocok berdasarkan kode saja.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error { return newf(CodeNotFound, format, args...) }

func InvalidState(format string, args ...any) *Error {
	return newf(CodeInvalidState, format, args...)
}

func Validation(format string, args ...any) *Error { return newf(CodeValidation, format, args...) }

func QuotaExceeded(format string, args ...any) *Error {
	return newf(CodeQuotaExceeded, format, args...)
}

// WithField menambahkan pesan untuk satu field.
func (e *Error) WithField(field, msg string) *Error {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// CodeOf mengembalikan kode error domain, atau CodeInternal untuk error lain.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is melaporkan apakah err (atau yang dibungkusnya) punya kode tertentu.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
