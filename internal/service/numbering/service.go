// sentiric-numbering-service/internal/service/numbering/service.go
package numbering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sentiric/sentiric-numbering-service/internal/metrics"
	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber"
	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber/metadata"
)

// Cache, çözümlenmiş numaraları saklayan katmandır. Get, kayıt yoksa (nil, nil) döner.
type Cache interface {
	Get(ctx context.Context, region, text string) (*phonenumber.PhoneNumber, error)
	Set(ctx context.Context, region, text string, n phonenumber.PhoneNumber) error
	Flush(ctx context.Context) error
}

// Result, tek bir çözümlemenin tüm biçimleriyle birlikte sonucudur.
type Result struct {
	Number        phonenumber.PhoneNumber `json:"number"`
	Region        string                  `json:"region,omitempty"`
	E164          string                  `json:"e164"`
	International string                  `json:"international,omitempty"`
	National      string                  `json:"national,omitempty"`
	RFC3966       string                  `json:"rfc3966,omitempty"`
}

// Service struct'ı, tüm bağımlılıkları tutar.
type Service struct {
	// Gömülü kural tablosu; veritabanı planları bunun üzerine eklenir.
	base *metadata.Database
	// O an geçerli tablo. Her tablo değişmezdir, yeniden yüklemede yalnızca işaretçi değişir.
	rules atomic.Pointer[metadata.Database]
	// Yalnızca yazarlar içindir: listele, derle ve sakla adımlarını sıraya koyar.
	reloadMu sync.Mutex

	repo    Repository // nil olabilir
	cache   Cache      // nil olabilir
	metrics *metrics.Metrics

	defaultRegion phonenumber.Country
	log           zerolog.Logger
}

func NewService(base *metadata.Database, repo Repository, cache Cache, m *metrics.Metrics, defaultRegion phonenumber.Country, log zerolog.Logger) *Service {
	s := &Service{
		base:          base,
		repo:          repo,
		cache:         cache,
		metrics:       m,
		defaultRegion: defaultRegion,
		log:           log,
	}
	s.rules.Store(base)
	return s
}

// -----------------------------------------------------------
// ÇÖZÜMLEME & BİÇİMLENDİRME
// -----------------------------------------------------------

// Parse, metni çözümler ve dört biçimi birden doldurur.
func (s *Service) Parse(ctx context.Context, region, text string) (*Result, error) {
	country, err := s.country(region)
	if err != nil {
		return nil, err
	}

	n, err := s.parse(ctx, country, text)
	if err != nil {
		return nil, err
	}

	rules := s.rules.Load()
	res := &Result{Number: n, E164: n.String()}
	if meta := rules.Main(n.Code.Value); meta != nil {
		res.Region = meta.ID()
	}

	// ITU'da olup tabloda kuralı olmayan kodlar için yalnızca E.164 döner.
	for _, mode := range []phonenumber.Mode{phonenumber.International, phonenumber.National, phonenumber.RFC3966} {
		out, err := phonenumber.Formatter{Database: rules, Mode: mode}.Format(n)
		if err != nil {
			continue
		}
		switch mode {
		case phonenumber.International:
			res.International = out
		case phonenumber.National:
			res.National = out
		case phonenumber.RFC3966:
			res.RFC3966 = out
		}
	}
	return res, nil
}

// Format, metni çözümleyip istenen modda biçimlendirir.
func (s *Service) Format(ctx context.Context, region, text, mode string) (string, error) {
	m, err := phonenumber.ParseMode(mode)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	country, err := s.country(region)
	if err != nil {
		return "", err
	}

	n, err := s.parse(ctx, country, text)
	if err != nil {
		s.metrics.IncFormat(m.String(), outcome(err))
		return "", err
	}

	out, err := phonenumber.Formatter{Database: s.rules.Load(), Mode: m}.Format(n)
	s.metrics.IncFormat(m.String(), outcome(err))
	if err != nil {
		s.log.Warn().Err(err).Str("number", n.String()).Str("mode", m.String()).Msg("Numara biçimlendirilemedi")
		return "", err
	}
	return out, nil
}

// Normalize, SIP URI/AOR ya da serbest metni E.164'e çevirir.
// "anonymous" olduğu gibi döner.
func (s *Service) Normalize(ctx context.Context, region, raw string) (string, error) {
	user := extractUserPart(raw)
	if user == anonymous {
		return user, nil
	}
	country, err := s.country(region)
	if err != nil {
		return "", err
	}

	n, err := s.parse(ctx, country, user)
	if err != nil {
		s.log.Debug().Err(err).Str("raw", raw).Msg("Numara normalize edilemedi")
		return "", err
	}
	return n.String(), nil
}

// Regions, geçerli tablodaki bölge kodlarını sıralı döndürür.
func (s *Service) Regions() []string {
	return s.rules.Load().Regions()
}

func (s *Service) country(region string) (phonenumber.Country, error) {
	if strings.TrimSpace(region) == "" {
		return s.defaultRegion, nil
	}
	c, err := phonenumber.ParseCountry(region)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	return c, nil
}

func (s *Service) parse(ctx context.Context, country phonenumber.Country, text string) (phonenumber.PhoneNumber, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveParseLatency(time.Since(start)) }()

	// Çözümleme bu tabloyla yapılır; arada tablo değişirse sonuç cache'e yazılmaz.
	rules := s.rules.Load()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, string(country), text)
		switch {
		case err != nil:
			s.metrics.IncCache("error")
			s.log.Warn().Err(err).Msg("Parse cache okunamadı, doğrudan çözümleniyor")
		case cached != nil:
			s.metrics.IncCache("hit")
			s.metrics.IncParse(outcome(nil))
			return *cached, nil
		default:
			s.metrics.IncCache("miss")
		}
	}

	n, err := phonenumber.ParseWith(rules, country, text)
	s.metrics.IncParse(outcome(err))
	if err != nil {
		return phonenumber.PhoneNumber{}, err
	}

	if s.cache != nil && s.rules.Load() == rules {
		if err := s.cache.Set(ctx, string(country), text, n); err != nil {
			s.log.Warn().Err(err).Msg("Parse cache yazılamadı")
		}
	}
	return n, nil
}

// outcome, metrik etiketi olarak kullanılan kısa hata adını döndürür.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, phonenumber.ErrNoNumber):
		return "no_number"
	case errors.Is(err, phonenumber.ErrTooShortNsn):
		return "too_short"
	case errors.Is(err, phonenumber.ErrTooLong):
		return "too_long"
	case errors.Is(err, phonenumber.ErrInvalidCountryCode):
		return "invalid_country_code"
	case errors.Is(err, phonenumber.ErrAmbiguousCountry):
		return "ambiguous_country"
	case errors.Is(err, phonenumber.ErrInvalidCountry):
		return "invalid_region"
	case errors.Is(err, phonenumber.ErrMalformedDigits):
		return "malformed"
	}
	return "error"
}

// -----------------------------------------------------------
// NUMARALANDIRMA PLANLARI
// -----------------------------------------------------------

// LoadPlans, veritabanındaki planları gömülü tablonun üzerine ekler.
func (s *Service) LoadPlans(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		if errors.Is(err, ErrTableMissing) {
			s.log.Warn().Msg("⚠️ 'numbering_plans' tablosu yok, yalnızca gömülü planlar kullanılacak.")
			return nil
		}
		return err
	}

	db, err := s.compile(plans)
	if err != nil {
		return err
	}
	s.rules.Store(db)

	s.log.Info().Int("overrides", len(plans)).Int("regions", len(db.Regions())).Msg("📚 Numaralandırma planları yüklendi")
	return nil
}

// ListPlans, veritabanındaki planları döndürür.
func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListPlans(ctx)
}

// GetPlan, bir bölgenin kayıtlı planını döndürür. Gömülü kurallar plan sayılmaz.
func (s *Service) GetPlan(ctx context.Context, region string) (*Plan, error) {
	country, err := phonenumber.ParseCountry(region)
	if err != nil || country == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	if s.repo == nil {
		return nil, ErrNotFound
	}
	return s.repo.FindPlan(ctx, string(country))
}

// PutPlan, bir bölgenin planını doğrular, kaydeder ve tabloyu yeniden yükler.
func (s *Service) PutPlan(ctx context.Context, region, document string) (*Plan, error) {
	country, err := phonenumber.ParseCountry(region)
	if err != nil || country == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	if s.repo == nil {
		return nil, fmt.Errorf("%w: plan deposu yapılandırılmadı", ErrDatabase)
	}

	plan := Plan{Region: string(country), Document: document, UpdatedAt: time.Now().UTC()}
	spec, err := decodePlan(plan)
	if err != nil {
		return nil, err
	}
	if _, err := metadata.NewDatabase(spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	if err := s.repo.SavePlan(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	s.log.Info().Str("region", plan.Region).Msg("✅ Numaralandırma planı güncellendi")
	return &plan, nil
}

// DeletePlan, bir bölgenin planını siler; bölge gömülü kurallara döner.
func (s *Service) DeletePlan(ctx context.Context, region string) error {
	if s.repo == nil {
		return fmt.Errorf("%w: plan deposu yapılandırılmadı", ErrDatabase)
	}
	rows, err := s.repo.DeletePlan(ctx, strings.ToUpper(region))
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) error {
	if err := s.LoadPlans(ctx); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Parse cache temizlenemedi")
		}
	}
	return nil
}

func (s *Service) compile(plans []Plan) (*metadata.Database, error) {
	specs := make([]metadata.RegionSpec, 0, len(plans))
	for _, p := range plans {
		spec, err := decodePlan(p)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	override, err := metadata.NewDatabase(specs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	return s.base.Merge(override), nil
}

func decodePlan(p Plan) (metadata.RegionSpec, error) {
	spec, err := metadata.DecodeRegion(strings.NewReader(p.Document))
	if err != nil {
		return metadata.RegionSpec{}, fmt.Errorf("%w: %s: %v", ErrInvalidPlan, p.Region, err)
	}
	if !strings.EqualFold(strings.TrimSpace(spec.ID), p.Region) {
		return metadata.RegionSpec{}, fmt.Errorf("%w: %s dokümanı %q bölgesini tanımlıyor", ErrInvalidPlan, p.Region, spec.ID)
	}
	return spec, nil
}
