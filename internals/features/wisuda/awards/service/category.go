package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	model "tahfidz_backend/internals/features/wisuda/awards/model"
	"tahfidz_backend/internals/helpers/apperror"
)

const (
	colCategoryID     = "award_category_id"
	colCategoryFilled = "award_category_filled"
)

type CategoryInput struct {
	EventID           uuid.UUID
	GroupName         string
	Name              string
	Quota             int
	RewardDescription *string
	TemplateID        *uuid.UUID
	IsActive          *bool
}

// CategoryPatch: field nil tidak diubah.
type CategoryPatch struct {
	GroupName         *string
	Name              *string
	Quota             *int
	RewardDescription *string
	TemplateID        *uuid.UUID
	IsActive          *bool
}

func (s *Service) getCategory(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AwardCategoryModel, error) {
	var m model.AwardCategoryModel
	if err := db.WithContext(ctx).Where(colCategoryID+" = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("kategori %s tidak ditemukan", id)
		}
		return nil, fmt.Errorf("load award category: %w", err)
	}
	return &m, nil
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*model.AwardCategoryModel, error) {
	return s.getCategory(ctx, s.DB, id)
}

// checkTemplate memastikan template yang dipasang di kategori adalah template AWARD.
func (s *Service) checkTemplate(ctx context.Context, id *uuid.UUID) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	var n int64
	err := s.DB.WithContext(ctx).Model(&certModel.CertificateTemplateModel{}).
		Where("certificate_template_id = ?", *id).
		Where("certificate_template_type = ?", certModel.CertificateTypeAward).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("check template: %w", err)
	}
	if n == 0 {
		return apperror.Validation("template sertifikat penghargaan tidak ditemukan").
			WithField("award_category_template_id", "unknown AWARD template")
	}
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*model.AwardCategoryModel, error) {
	if in.EventID == uuid.Nil {
		return nil, apperror.Validation("acara wajib diisi").WithField("award_category_event_id", "required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("nama kategori wajib diisi").WithField("award_category_name", "required")
	}
	if in.Quota <= 0 {
		return nil, apperror.Validation("kuota harus > 0").WithField("award_category_quota", "gt=0")
	}
	if _, err := s.GetEvent(ctx, in.EventID); err != nil {
		return nil, err
	}
	if err := s.checkTemplate(ctx, in.TemplateID); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	m := &model.AwardCategoryModel{
		AwardCategoryEventID:           in.EventID,
		AwardCategoryGroupName:         strings.TrimSpace(in.GroupName),
		AwardCategoryName:              name,
		AwardCategoryQuota:             in.Quota,
		AwardCategoryRewardDescription: in.RewardDescription,
		AwardCategoryTemplateID:        in.TemplateID,
		AwardCategoryIsActive:          active,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create award category: %w", err)
	}
	log.Printf("[Wisuda.CreateCategory] category_id=%s event_id=%s quota=%d", m.AwardCategoryID, in.EventID, in.Quota)
	return m, nil
}

// UpdateCategory menolak kuota baru yang lebih kecil dari jumlah penerima saat ini.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, p CategoryPatch) (*model.AwardCategoryModel, error) {
	updates := map[string]any{}
	if p.GroupName != nil {
		updates["award_category_group_name"] = strings.TrimSpace(*p.GroupName)
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperror.Validation("nama kategori wajib diisi").WithField("award_category_name", "required")
		}
		updates["award_category_name"] = name
	}
	if p.RewardDescription != nil {
		updates["award_category_reward_description"] = *p.RewardDescription
	}
	if p.TemplateID != nil {
		if err := s.checkTemplate(ctx, p.TemplateID); err != nil {
			return nil, err
		}
		updates["award_category_template_id"] = *p.TemplateID
	}
	if p.IsActive != nil {
		updates["award_category_is_active"] = *p.IsActive
	}
	if p.Quota != nil {
		if *p.Quota <= 0 {
			return nil, apperror.Validation("kuota harus > 0").WithField("award_category_quota", "gt=0")
		}
		updates["award_category_quota"] = *p.Quota
	}
	if len(updates) == 0 {
		return s.GetCategory(ctx, id)
	}

	q := s.DB.WithContext(ctx).Model(&model.AwardCategoryModel{}).Where(colCategoryID+" = ?", id)
	if p.Quota != nil {
		q = q.Where(colCategoryFilled+" <= ?", *p.Quota)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update award category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := s.GetCategory(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperror.InvalidState("kuota %d lebih kecil dari penerima saat ini (%d)", *p.Quota, cur.AwardCategoryFilled)
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory (soft delete) hanya untuk kategori tanpa penerima.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where(colCategoryID+" = ?", id).
		Where(colCategoryFilled + " = 0").
		Delete(&model.AwardCategoryModel{})
	if res.Error != nil {
		return fmt.Errorf("delete award category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := s.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		return apperror.InvalidState("kategori masih punya %d penerima", cur.AwardCategoryFilled)
	}
	log.Printf("[Wisuda.DeleteCategory] category_id=%s", id)
	return nil
}

func (s *Service) ListCategories(ctx context.Context, eventID uuid.UUID) ([]model.AwardCategoryModel, error) {
	var out []model.AwardCategoryModel
	err := s.DB.WithContext(ctx).
		Where("award_category_event_id = ?", eventID).
		Order("award_category_group_name ASC, award_category_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list award categories: %w", err)
	}
	return out, nil
}
