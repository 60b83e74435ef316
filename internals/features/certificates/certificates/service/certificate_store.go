package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	numberSvc "tahfidz_backend/internals/features/certificates/certificate_numbers/service"
	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	"tahfidz_backend/internals/helpers/apperror"
)

// percobaan ulang hanya untuk bentrok nomor, bukan bentrok sumber
const maxIssueAttempts = 3

var (
	ErrCertificateNotFound = apperror.NotFound("sertifikat belum diterbitkan")
	ErrNumberTaken         = errors.New("certificate number already used")

	errLostRace = errors.New("certificate created by concurrent request")
)

type Store struct {
	DB    *gorm.DB
	Alloc *numberSvc.Allocator
	Now   func() time.Time
}

func NewStore(db *gorm.DB, alloc *numberSvc.Allocator) *Store {
	return &Store{DB: db, Alloc: alloc, Now: time.Now}
}

type CreateInput struct {
	SourceKind certModel.SourceKind
	SourceID   uuid.UUID
	Number     string
	TemplateID *uuid.UUID
	IssuerID   uuid.UUID
}

func sourceColumn(kind certModel.SourceKind) (string, error) {
	switch kind {
	case certModel.SourceTasmi:
		return "certificate_tasmi_id", nil
	case certModel.SourceAwardRecipient:
		return "certificate_award_recipient_id", nil
	}
	return "", fmt.Errorf("unknown certificate source %q", kind)
}

// Create menyimpan sertifikat untuk satu sumber. Kalau sumber itu sudah punya
// sertifikat (termasuk yang baru saja dibuat request lain), baris pemenang
// dikembalikan dengan created=false.
func (s *Store) Create(ctx context.Context, tx *gorm.DB, in CreateInput) (*certModel.CertificateModel, bool, error) {
	if in.SourceID == uuid.Nil {
		return nil, false, apperror.Validation("sumber sertifikat wajib diisi")
	}
	if in.Number == "" {
		return nil, false, apperror.Validation("nomor sertifikat wajib diisi")
	}
	if in.IssuerID == uuid.Nil {
		return nil, false, apperror.Validation("penerbit sertifikat wajib diisi")
	}

	cert := &certModel.CertificateModel{
		CertificateType:       in.SourceKind.CertificateType(),
		CertificateNumber:     in.Number,
		CertificateTemplateID: in.TemplateID,
		CertificateIssuedBy:   in.IssuerID,
	}
	src := in.SourceID
	switch in.SourceKind {
	case certModel.SourceTasmi:
		cert.CertificateTasmiID = &src
	case certModel.SourceAwardRecipient:
		cert.CertificateAwardRecipientID = &src
	default:
		return nil, false, fmt.Errorf("unknown certificate source %q", in.SourceKind)
	}

	res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(cert)
	if res.Error != nil {
		return nil, false, fmt.Errorf("insert certificate: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return cert, true, nil
	}

	// Tidak ada baris masuk: sumber sudah punya sertifikat, atau nomornya bentrok.
	existing, err := s.Get(ctx, tx, in.SourceKind, in.SourceID)
	if err == nil {
		return existing, false, nil
	}
	if errors.Is(err, ErrCertificateNotFound) {
		return nil, false, fmt.Errorf("%w: %s", ErrNumberTaken, in.Number)
	}
	return nil, false, err
}

// Get mengembalikan sertifikat milik sumber, atau ErrCertificateNotFound.
// db boleh nil (pakai koneksi utama) atau transaksi yang sedang berjalan.
func (s *Store) Get(ctx context.Context, db *gorm.DB, kind certModel.SourceKind, sourceID uuid.UUID) (*certModel.CertificateModel, error) {
	col, err := sourceColumn(kind)
	if err != nil {
		return nil, err
	}
	if db == nil {
		db = s.DB
	}
	var cert certModel.CertificateModel
	if err := db.WithContext(ctx).Where(col+" = ?", sourceID).Take(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	return &cert, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*certModel.CertificateModel, error) {
	var cert certModel.CertificateModel
	if err := s.DB.WithContext(ctx).Where("certificate_id = ?", id).Take(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("sertifikat %s tidak ditemukan", id)
		}
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	return &cert, nil
}

func (s *Store) GetByNumber(ctx context.Context, number string) (*certModel.CertificateModel, error) {
	var cert certModel.CertificateModel
	if err := s.DB.WithContext(ctx).Where("certificate_number = ?", number).Take(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("sertifikat %s tidak ditemukan", number)
		}
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	return &cert, nil
}

// IssueRequest menjelaskan satu penerbitan sertifikat.
type IssueRequest struct {
	SourceKind          certModel.SourceKind
	SourceID            uuid.UUID
	PreferredTemplateID *uuid.UUID
	IssuerID            uuid.UUID

	// Guard dijalankan pertama kali di dalam transaksi; dipakai pemanggil untuk
	// mengunci/memastikan sumber masih valid.
	Guard func(tx *gorm.DB) error
}

// Issue menerbitkan sertifikat secara idempoten: kalau sumber sudah punya
// sertifikat, yang lama dikembalikan (created=false). Alokasi nomor dan insert
// terjadi di satu transaksi.
func (s *Store) Issue(ctx context.Context, req IssueRequest) (*certModel.CertificateModel, bool, error) {
	if existing, err := s.Get(ctx, nil, req.SourceKind, req.SourceID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrCertificateNotFound) {
		return nil, false, err
	}

	typ := req.SourceKind.CertificateType()
	for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
		var (
			out     *certModel.CertificateModel
			created bool
		)
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if req.Guard != nil {
				if err := req.Guard(tx); err != nil {
					return err
				}
			}

			tpl, err := s.ResolveTemplate(ctx, tx, typ, req.PreferredTemplateID)
			if err != nil {
				return err
			}
			var tplID *uuid.UUID
			if tpl != nil {
				tplID = &tpl.CertificateTemplateID
			}

			number, err := s.Alloc.Next(ctx, tx, typ, s.Now())
			if err != nil {
				return err
			}

			out, created, err = s.Create(ctx, tx, CreateInput{
				SourceKind: req.SourceKind,
				SourceID:   req.SourceID,
				Number:     number,
				TemplateID: tplID,
				IssuerID:   req.IssuerID,
			})
			if err != nil {
				return err
			}
			if !created {
				// rollback supaya nomor yang tadi dialokasikan tidak terbuang
				return errLostRace
			}
			return nil
		})

		switch {
		case err == nil:
			log.Printf("[Certificate.Issue] issued number=%s kind=%s source_id=%s",
				out.CertificateNumber, req.SourceKind, req.SourceID)
			return out, true, nil
		case errors.Is(err, errLostRace):
			log.Printf("[Certificate.Issue] lost race, returning existing number=%s source_id=%s",
				out.CertificateNumber, req.SourceID)
			return out, false, nil
		case errors.Is(err, ErrNumberTaken):
			log.Printf("[Certificate.Issue] number collision attempt=%d source_id=%s: %v", attempt, req.SourceID, err)
			continue
		default:
			return nil, false, err
		}
	}
	return nil, false, fmt.Errorf("issue certificate for %s %s: %w", req.SourceKind, req.SourceID, ErrNumberTaken)
}
