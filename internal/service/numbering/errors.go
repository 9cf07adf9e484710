package numbering

import "errors"

var (
	// ErrNotFound: İstenen numaralandırma planı veritabanında bulunamadı.
	ErrNotFound = errors.New("record not found")

	// ErrDatabase: Beklenmeyen veritabanı hatası.
	ErrDatabase = errors.New("database internal error")

	// ErrTableMissing: Kritik altyapı hatası (Tablo yok).
	ErrTableMissing = errors.New("critical: database table missing")

	// ErrInvalidPlan: Veritabanındaki plan dokümanı derlenemedi.
	ErrInvalidPlan = errors.New("invalid numbering plan")

	// ErrInvalidRegion: Bölge kodu ISO 3166 değil.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidMode: Bilinmeyen biçimlendirme modu.
	ErrInvalidMode = errors.New("invalid format mode")
)
