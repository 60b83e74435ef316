package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := LoadLocation("Asia/Jakarta")

	// 18:30 UTC sudah masuk hari berikutnya di WIB
	at := time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "20250310", DateKey(at, loc))
	assert.Equal(t, "20250309", DateKey(at, time.UTC))
}

func TestLoadLocationFallback(t *testing.T) {
	loc := LoadLocation("Mars/Olympus_Mons")
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*60*60, offset)

	assert.Equal(t, "Asia/Jakarta", LoadLocation("").String())
}
