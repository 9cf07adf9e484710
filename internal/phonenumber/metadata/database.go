package metadata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/regions.yaml
var regionsYAML []byte

// Document is the on-disk form of a rule table.
type Document struct {
	Regions []RegionSpec `yaml:"regions"`
}

// Database is an immutable rule table indexed by region and calling code.
type Database struct {
	regions []*Metadata
	byID    map[string]*Metadata
	byCode  map[uint16][]*Metadata
}

var (
	defaultOnce sync.Once
	defaultDB   *Database
	defaultErr  error
)

// Default returns the process wide rule table compiled from the embedded
// document. It is built on first use and never changes afterwards.
func Default() (*Database, error) {
	defaultOnce.Do(func() {
		defaultDB, defaultErr = Decode(bytes.NewReader(regionsYAML))
	})
	return defaultDB, defaultErr
}

// Decode reads a YAML rule table.
func Decode(r io.Reader) (*Database, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDatabase()
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return NewDatabase(doc.Regions...)
}

// DecodeRegion reads a document holding a single region, as stored for
// per-region overrides.
func DecodeRegion(r io.Reader) (RegionSpec, error) {
	var spec RegionSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return RegionSpec{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return spec, nil
}

// NewDatabase compiles the given regions into a Database.
func NewDatabase(specs ...RegionSpec) (*Database, error) {
	regions := make([]*Metadata, 0, len(specs))
	seen := make(map[string]bool, len(specs))

	for _, spec := range specs {
		m, err := patterns.region(spec)
		if err != nil {
			return nil, err
		}
		if seen[m.id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRegion, m.id)
		}
		seen[m.id] = true
		regions = append(regions, m)
	}

	return index(regions), nil
}

func index(regions []*Metadata) *Database {
	db := &Database{
		regions: regions,
		byID:    make(map[string]*Metadata, len(regions)),
		byCode:  make(map[uint16][]*Metadata),
	}
	for _, m := range regions {
		db.byID[m.id] = m
		if m.main {
			db.byCode[m.countryCode] = append([]*Metadata{m}, db.byCode[m.countryCode]...)
		} else {
			db.byCode[m.countryCode] = append(db.byCode[m.countryCode], m)
		}
	}
	return db
}

// Merge returns a new Database holding the regions of db with those of other
// replacing or extending them. Neither input is modified.
func (db *Database) Merge(other *Database) *Database {
	if other == nil || len(other.regions) == 0 {
		return db
	}

	regions := make([]*Metadata, 0, len(db.regions)+len(other.regions))
	for _, m := range db.regions {
		if replacement, ok := other.byID[m.id]; ok {
			regions = append(regions, replacement)
			continue
		}
		regions = append(regions, m)
	}
	for _, m := range other.regions {
		if _, ok := db.byID[m.id]; !ok {
			regions = append(regions, m)
		}
	}
	return index(regions)
}

// ByID returns the metadata of region id, or nil.
func (db *Database) ByID(id string) *Metadata {
	return db.byID[strings.ToUpper(id)]
}

// ByCode returns every region sharing the calling code, main region first.
func (db *Database) ByCode(code uint16) []*Metadata {
	return db.byCode[code]
}

// Main returns the main region of a calling code, or nil.
func (db *Database) Main(code uint16) *Metadata {
	if regions := db.byCode[code]; len(regions) > 0 {
		return regions[0]
	}
	return nil
}

// Regions lists the region ids in the table, sorted.
func (db *Database) Regions() []string {
	ids := make([]string, 0, len(db.byID))
	for id := range db.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CountryCodeFor returns the calling code of region id, falling back to the
// ITU assignment when the table has no rules for it.
func (db *Database) CountryCodeFor(id string) (uint16, bool) {
	if m := db.ByID(id); m != nil {
		return m.countryCode, true
	}
	if code := ituCountryCode(strings.ToUpper(id)); code != 0 {
		return code, true
	}
	return 0, false
}

// IsKnownCode reports whether code is in the table or assigned by the ITU.
func (db *Database) IsKnownCode(code uint16) bool {
	if _, ok := db.byCode[code]; ok {
		return true
	}
	return ituKnownCode(code)
}
