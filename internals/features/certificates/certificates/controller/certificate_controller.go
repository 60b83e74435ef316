package controller

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	numberSvc "tahfidz_backend/internals/features/certificates/certificate_numbers/service"
	dto "tahfidz_backend/internals/features/certificates/certificates/dto"
	model "tahfidz_backend/internals/features/certificates/certificates/model"
	svc "tahfidz_backend/internals/features/certificates/certificates/service"
	helper "tahfidz_backend/internals/helpers"
)

type CertificateController struct {
	Store *svc.Store
}

func NewCertificateController(store *svc.Store) *CertificateController {
	return &CertificateController{Store: store}
}

/*
GET /api/public/certificates/:number
Nomor mengandung "/", jadi dikirim URL-encoded (CERT%2FTASMI%2F...).
*/
func (ctl *CertificateController) VerifyByNumber(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("number"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format nomor sertifikat tidak valid")
	}
	number := strings.ToUpper(strings.TrimSpace(raw))
	if _, err := numberSvc.Parse(number); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format nomor sertifikat tidak valid")
	}

	v, err := ctl.Store.Verify(c.Context(), number)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Sertifikat valid", v)
}

// GET /api/a/certificates/templates?type=AWARD|NON_AWARD
func (ctl *CertificateController) ListTemplates(c *fiber.Ctx) error {
	t := model.CertificateType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	if t != "" && !t.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "type harus AWARD atau NON_AWARD")
	}
	rows, err := ctl.Store.ListTemplates(c.Context(), t)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromTemplates(rows))
}
