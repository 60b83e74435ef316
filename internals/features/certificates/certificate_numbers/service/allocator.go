// Package service mengalokasikan nomor sertifikat CERT/{PREFIX}/{YYYYMMDD}/{SEQ4}.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gorm.io/gorm"

	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	"tahfidz_backend/internals/helpers/dbtime"
)

const (
	PrefixTasmi = "TASMI"
	PrefixAward = "AWARD"

	MaxSeq = 9999
)

var (
	ErrSequenceExhausted = errors.New("certificate number sequence exhausted for today")
	ErrInvalidNumber     = errors.New("invalid certificate number")

	numberPattern = regexp.MustCompile(`^CERT/(TASMI|AWARD)/(\d{8})/(\d{4})$`)
)

// Satu statement: buat baris counter hari ini atau naikkan, lalu kembalikan
// nilai barunya. Baris counter terkunci sampai transaksi pemanggil selesai.
const nextSeqSQL = `
INSERT INTO certificate_number_counters
	(certificate_number_counter_prefix, certificate_number_counter_date_key,
	 certificate_number_counter_last_seq, certificate_number_counter_updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (certificate_number_counter_prefix, certificate_number_counter_date_key)
DO UPDATE SET
	certificate_number_counter_last_seq = certificate_number_counters.certificate_number_counter_last_seq + 1,
	certificate_number_counter_updated_at = excluded.certificate_number_counter_updated_at
RETURNING certificate_number_counter_last_seq`

type Allocator struct {
	loc *time.Location
}

func NewAllocator(loc *time.Location) *Allocator {
	if loc == nil {
		loc = dbtime.LoadLocation(dbtime.DefaultTimezone)
	}
	return &Allocator{loc: loc}
}

// Number adalah hasil parse nomor sertifikat.
type Number struct {
	Prefix  string
	DateKey string
	Seq     int
}

func (n Number) String() string {
	return fmt.Sprintf("CERT/%s/%s/%04d", n.Prefix, n.DateKey, n.Seq)
}

func PrefixFor(t certModel.CertificateType) (string, error) {
	switch t {
	case certModel.CertificateTypeNonAward:
		return PrefixTasmi, nil
	case certModel.CertificateTypeAward:
		return PrefixAward, nil
	}
	return "", fmt.Errorf("unknown certificate type %q", t)
}

// Next mengalokasikan nomor berikutnya untuk (jenis, tanggal at).
// tx harus transaksi yang juga dipakai untuk menyimpan sertifikatnya,
// supaya nomor ikut di-rollback kalau penerbitan gagal.
func (a *Allocator) Next(ctx context.Context, tx *gorm.DB, t certModel.CertificateType, at time.Time) (string, error) {
	prefix, err := PrefixFor(t)
	if err != nil {
		return "", err
	}
	dateKey := dbtime.DateKey(at, a.loc)

	var seq int
	if err := tx.WithContext(ctx).Raw(nextSeqSQL, prefix, dateKey, at.UTC()).Scan(&seq).Error; err != nil {
		return "", fmt.Errorf("allocate %s/%s: %w", prefix, dateKey, err)
	}
	if seq < 1 {
		return "", fmt.Errorf("allocate %s/%s: counter returned %d", prefix, dateKey, seq)
	}
	if seq > MaxSeq {
		return "", fmt.Errorf("%w: %s/%s", ErrSequenceExhausted, prefix, dateKey)
	}
	return Number{Prefix: prefix, DateKey: dateKey, Seq: seq}.String(), nil
}

func Parse(s string) (Number, error) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return Number{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if _, err := time.Parse("20060102", m[2]); err != nil {
		return Number{}, fmt.Errorf("%w: bad date in %q", ErrInvalidNumber, s)
	}
	seq, _ := strconv.Atoi(m[3])
	if seq < 1 {
		return Number{}, fmt.Errorf("%w: zero sequence in %q", ErrInvalidNumber, s)
	}
	return Number{Prefix: m[1], DateKey: m[2], Seq: seq}, nil
}
