package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tahfidz_backend/internals/configs"
	certNumberModel "tahfidz_backend/internals/features/certificates/certificate_numbers/model"
	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	awardModel "tahfidz_backend/internals/features/wisuda/awards/model"
)

var DB *gorm.DB

// Models adalah daftar tabel yang dimiliki core sertifikasi.
func Models() []any {
	return []any{
		&studentModel.StudentModel{},
		&tasmiModel.TasmiExamModel{},
		&certNumberModel.CertificateNumberCounterModel{},
		&certModel.CertificateTemplateModel{},
		&certModel.CertificateModel{},
		&awardModel.AwardEventModel{},
		&awardModel.AwardCategoryModel{},
		&awardModel.AwardRecipientModel{},
	}
}

func ConnectDB(cfg configs.Config) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer dan biarkan PreferSimpleProtocol=true
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")

	if cfg.DBAutoMigrate {
		if err := Migrate(db); err != nil {
			log.Fatalf("❌ Gagal migrasi: %v", err)
		}
		log.Println("✅ Migrasi selesai.")
	}
}

// Migrate membuat/menyesuaikan tabel core.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("close db err: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("close db err: %v", err)
	}
}
