package model

import "time"

// CertificateNumberCounterModel menyimpan nomor urut terakhir per (prefix, tanggal).
// Satu baris per hari per jenis sertifikat; dinaikkan secara atomik oleh allocator.
type CertificateNumberCounterModel struct {
	CertificateNumberCounterPrefix    string    `gorm:"column:certificate_number_counter_prefix;type:varchar(16);primaryKey" json:"certificate_number_counter_prefix"`
	CertificateNumberCounterDateKey   string    `gorm:"column:certificate_number_counter_date_key;type:char(8);primaryKey" json:"certificate_number_counter_date_key"`
	CertificateNumberCounterLastSeq   int       `gorm:"column:certificate_number_counter_last_seq;not null" json:"certificate_number_counter_last_seq"`
	CertificateNumberCounterUpdatedAt time.Time `gorm:"column:certificate_number_counter_updated_at;not null" json:"certificate_number_counter_updated_at"`
}

func (CertificateNumberCounterModel) TableName() string {
	return "certificate_number_counters"
}
