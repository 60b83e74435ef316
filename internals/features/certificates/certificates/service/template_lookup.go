package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
)

// ResolveTemplate memilih template sertifikat:
//  1. preferred, kalau ada, aktif, dan jenisnya cocok
//  2. template default aktif untuk jenis itu
//  3. nil (sertifikat tetap terbit tanpa template)
func (s *Store) ResolveTemplate(ctx context.Context, db *gorm.DB, t certModel.CertificateType, preferred *uuid.UUID) (*certModel.CertificateTemplateModel, error) {
	if db == nil {
		db = s.DB
	}
	q := db.WithContext(ctx).Model(&certModel.CertificateTemplateModel{})

	if preferred != nil && *preferred != uuid.Nil {
		var tpl certModel.CertificateTemplateModel
		err := q.Session(&gorm.Session{}).
			Where("certificate_template_id = ?", *preferred).
			Where("certificate_template_type = ?", t).
			Where("certificate_template_is_active = ?", true).
			Take(&tpl).Error
		if err == nil {
			return &tpl, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load template: %w", err)
		}
	}

	var def certModel.CertificateTemplateModel
	err := q.Session(&gorm.Session{}).
		Where("certificate_template_type = ?", t).
		Where("certificate_template_is_default = ?", true).
		Where("certificate_template_is_active = ?", true).
		Take(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load default template: %w", err)
	}
	return &def, nil
}

// ListTemplates untuk layar admin (filter jenis opsional).
func (s *Store) ListTemplates(ctx context.Context, t certModel.CertificateType) ([]certModel.CertificateTemplateModel, error) {
	q := s.DB.WithContext(ctx).Model(&certModel.CertificateTemplateModel{})
	if t != "" {
		q = q.Where("certificate_template_type = ?", t)
	}
	var out []certModel.CertificateTemplateModel
	if err := q.Order("certificate_template_type ASC, certificate_template_name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}
