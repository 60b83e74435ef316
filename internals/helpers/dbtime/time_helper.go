// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"log"
	"strings"
	"time"
	_ "time/tzdata" // container minimal sering tidak punya zoneinfo
)

const DefaultTimezone = "Asia/Jakarta"

// wib dipakai kalau zoneinfo tetap gagal dimuat.
var wib = time.FixedZone("WIB", 7*60*60)

// LoadLocation memuat timezone sekolah:
// 1) nama yang diberikan
// 2) fallback Asia/Jakarta
// 3) fallback terakhir UTC+7 tetap
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	log.Printf("[WARN] timezone %q tidak dikenal, pakai %s", name, DefaultTimezone)
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return wib
}

// DateKey mengembalikan tanggal kalender YYYYMMDD dari t di timezone loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = wib
	}
	return t.In(loc).Format("20060102")
}
