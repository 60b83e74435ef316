package helper

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tahfidz_backend/internals/helpers/apperror"
)

// FromAppError mengubah error dari service menjadi response JSON konsisten.
// *apperror.Error dipetakan ke status HTTP; *fiber.Error dipakai apa adanya;
// selain itu 500 tanpa membocorkan pesan internal.
func FromAppError(c *fiber.Ctx, err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		switch ae.Code {
		case apperror.CodeNotFound:
			return JsonErrorCode(c, fiber.StatusNotFound, string(ae.Code), ae.Message)
		case apperror.CodeInvalidState:
			return JsonErrorCode(c, fiber.StatusConflict, string(ae.Code), ae.Message)
		case apperror.CodeQuotaExceeded:
			return JsonErrorCode(c, fiber.StatusConflict, string(ae.Code), ae.Message)
		case apperror.CodeValidation:
			return JsonValidationError(c, ae.Message, ae.Fields)
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// BindAndValidate mem-parse body lalu menjalankan tag validate.
// Error yang dikembalikan siap dilempar ke FromAppError.
func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := Validate.Struct(out); err != nil {
		return FromValidator(err)
	}
	return nil
}

// FromValidator mengubah validator.ValidationErrors menjadi apperror validasi per-field.
func FromValidator(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}
	out := apperror.Validation("Validasi gagal")
	for _, fe := range ve {
		out.WithField(fe.Field(), fe.Tag())
	}
	return out
}
