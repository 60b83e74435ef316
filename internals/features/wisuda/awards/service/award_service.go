// Package service mengelola wisuda: acara, kategori berkuota, pencarian
// kandidat dari hasil tasmi', penerima, dan sertifikat penghargaan.
//
// Kuota kategori dijaga oleh kolom award_category_filled yang hanya diubah
// lewat UPDATE bersyarat di transaksi yang sama dengan insert/delete penerima.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	model "tahfidz_backend/internals/features/wisuda/awards/model"
	"tahfidz_backend/internals/helpers/apperror"
	"tahfidz_backend/internals/helpers/queue"
)

// DefaultCandidateLimit dipakai kalau limit tidak dikonfigurasi.
const DefaultCandidateLimit = 100

type Service struct {
	DB             *gorm.DB
	Certs          *certSvc.Store
	Events         queue.Publisher
	CandidateLimit int
	Now            func() time.Time
}

func New(db *gorm.DB, certs *certSvc.Store, events queue.Publisher, candidateLimit int) *Service {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	return &Service{
		DB:             db,
		Certs:          certs,
		Events:         events,
		CandidateLimit: candidateLimit,
		Now:            time.Now,
	}
}

/* =========================
   Events (acara wisuda)
========================= */

type EventInput struct {
	Name     string
	Date     *time.Time
	IsActive *bool
}

func (s *Service) CreateEvent(ctx context.Context, in EventInput) (*model.AwardEventModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("nama acara wajib diisi").WithField("award_event_name", "required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	m := &model.AwardEventModel{
		AwardEventName:     name,
		AwardEventDate:     in.Date,
		AwardEventIsActive: active,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create award event: %w", err)
	}
	log.Printf("[Wisuda.CreateEvent] event_id=%s name=%q", m.AwardEventID, name)
	return m, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*model.AwardEventModel, error) {
	var m model.AwardEventModel
	if err := s.DB.WithContext(ctx).Where("award_event_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("acara wisuda %s tidak ditemukan", id)
		}
		return nil, fmt.Errorf("load award event: %w", err)
	}
	return &m, nil
}

func (s *Service) ListEvents(ctx context.Context, activeOnly bool) ([]model.AwardEventModel, error) {
	q := s.DB.WithContext(ctx).Model(&model.AwardEventModel{})
	if activeOnly {
		q = q.Where("award_event_is_active = ?", true)
	}
	var out []model.AwardEventModel
	if err := q.Order("award_event_created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list award events: %w", err)
	}
	return out, nil
}

// UpdateEvent: field nil tidak diubah.
func (s *Service) UpdateEvent(ctx context.Context, id uuid.UUID, in EventInput) (*model.AwardEventModel, error) {
	updates := map[string]any{}
	if name := strings.TrimSpace(in.Name); name != "" {
		updates["award_event_name"] = name
	}
	if in.Date != nil {
		updates["award_event_date"] = *in.Date
	}
	if in.IsActive != nil {
		updates["award_event_is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return s.GetEvent(ctx, id)
	}

	res := s.DB.WithContext(ctx).Model(&model.AwardEventModel{}).Where("award_event_id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update award event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("acara wisuda %s tidak ditemukan", id)
	}
	return s.GetEvent(ctx, id)
}
