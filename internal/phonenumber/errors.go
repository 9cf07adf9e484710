package phonenumber

import (
	"errors"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/grammar"
)

var (
	// ErrNoNumber: metinde telefon numarası yok.
	ErrNoNumber = grammar.ErrNoNumber

	// ErrTooShortNsn: ulusal numara MinLengthForNSN'den kısa.
	ErrTooShortNsn = errors.New("national number too short")

	// ErrTooLong: ulusal numara MaxLengthForNSN'den uzun.
	ErrTooLong = errors.New("national number too long")

	// ErrMalformedDigits: rakam dizisi sayıya çevrilemedi.
	ErrMalformedDigits = errors.New("malformed digits")

	// ErrInvalidCountryCode: ülke kodu bilinmiyor ya da kural tablosunda yok.
	ErrInvalidCountryCode = errors.New("invalid country code")

	// ErrAmbiguousCountry: numara ne "+" ne de IDD içeriyor ve varsayılan ülke verilmedi.
	ErrAmbiguousCountry = errors.New("country cannot be determined without a default country")

	// ErrInvalidCountry: ISO 3166 bölge kodu geçersiz.
	ErrInvalidCountry = errors.New("invalid country")

	// ErrInvalidMode: bilinmeyen biçimlendirme modu.
	ErrInvalidMode = errors.New("invalid format mode")
)
