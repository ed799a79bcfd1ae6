package scale

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/azrealign/canvass/internal/domain"
)

// document is the configuration envelope the scale ships in. The scale
// may also appear at the document root for hand-written configs.
type document struct {
	CategorizationSystem struct {
		CompetitivenessScale *Table `yaml:"competitiveness_scale"`
	} `yaml:"categorization_system"`
}

// Loader parses, validates, and caches competitiveness scale documents.
// Documents may be YAML or JSON. Identical content is validated once and
// served from a SHA256-keyed cache thereafter.
type Loader struct {
	// validator performs struct field validation for scale tables.
	validator *validator.Validate
	// cache stores validated tables indexed by content hash. Cached
	// tables must not be mutated by callers.
	cache   map[string]*Table
	cacheMu sync.RWMutex
	// sf prevents duplicate validation when multiple goroutines request
	// the same scale simultaneously.
	sf singleflight.Group
}

// NewLoader creates a scale loader with an empty cache.
func NewLoader() *Loader {
	return &Loader{
		validator: validator.New(),
		cache:     make(map[string]*Table),
	}
}

// LoadFromFile loads and validates a competitiveness scale from a YAML
// or JSON file. The returned table is a pointer to a cached instance and
// must not be mutated.
func (l *Loader) LoadFromFile(path string) (*Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read scale file: %w", err)
	}
	return l.load(data)
}

// LoadFromReader loads and validates a competitiveness scale from any
// reader. The returned table is a pointer to a cached instance and must
// not be mutated.
func (l *Loader) LoadFromReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scale data: %w", err)
	}
	return l.load(data)
}

func (l *Loader) load(data []byte) (*Table, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	v, err, _ := l.sf.Do(hash, func() (any, error) {
		if table, ok := l.cached(hash); ok {
			return table, nil
		}

		table, err := l.parse(data)
		if err != nil {
			return nil, err
		}

		if err := l.validator.Struct(table); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidScale, err)
		}
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidScale, err)
		}

		l.cacheMu.Lock()
		l.cache[hash] = table
		l.cacheMu.Unlock()

		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

func (l *Loader) parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse scale document: %v", domain.ErrInvalidScale, err)
	}
	if doc.CategorizationSystem.CompetitivenessScale != nil {
		return doc.CategorizationSystem.CompetitivenessScale, nil
	}

	// No envelope: treat the document root as the table itself.
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: failed to parse scale table: %v", domain.ErrInvalidScale, err)
	}
	return &table, nil
}

func (l *Loader) cached(hash string) (*Table, bool) {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	table, ok := l.cache[hash]
	return table, ok
}
