// Package zone loads authoritative zone files from disk.
//
// A zone file is a JSON, YAML or TOML document with a required "$origin" key. Every
// other top-level key names a record type and holds a list of {ttl, value} entries:
//
//	{
//	  "$origin": "example.com.",
//	  "a": [{"ttl": 400, "value": "127.0.0.1"}]
//	}
package zone

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/rrdata"
	"github.com/haukened/rr-authdns/internal/dns/common/utils"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// originKey is the document key holding the zone origin.
const originKey = "$origin"

var (
	// ErrMissingOrigin is returned when a zone file has no "$origin".
	ErrMissingOrigin = errors.New("zone file missing $origin")

	// ErrInvalidRecord is returned when a record entry cannot be used.
	ErrInvalidRecord = errors.New("invalid zone record")
)

// Loader reads zone files. DefaultTTL applies to entries without a ttl.
type Loader struct {
	DefaultTTL uint32
	Logger     log.Logger
}

// NewLoader returns a Loader. A nil logger discards warnings.
func NewLoader(defaultTTL uint32, logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Loader{DefaultTTL: defaultTTL, Logger: logger}
}

// LoadZoneDirectory walks dir, loading every supported zone file. Files sharing an
// origin are merged, appending record sets in walk order. Zones are returned in the
// order their origin was first seen. Any file that fails to parse aborts the load.
func (l *Loader) LoadZoneDirectory(dir string) ([]domain.Zone, error) {
	var order []string
	merged := make(map[string]domain.Zone)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		z, ok, err := l.LoadZoneFile(path)
		if err != nil {
			return fmt.Errorf("error parsing zone file %s: %w", path, err)
		}
		if !ok {
			return nil
		}

		existing, seen := merged[z.Origin]
		if !seen {
			order = append(order, z.Origin)
			merged[z.Origin] = z
			return nil
		}
		l.Logger.Info(map[string]any{"origin": z.Origin, "file": path}, "merging duplicate zone origin")
		for t, set := range z.Records {
			existing.Records[t] = append(existing.Records[t], set...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zones := make([]domain.Zone, 0, len(order))
	for _, origin := range order {
		zones = append(zones, merged[origin])
	}
	return zones, nil
}

// LoadZoneFile parses a single zone file. ok is false for unsupported extensions.
func (l *Loader) LoadZoneFile(path string) (z domain.Zone, ok bool, err error) {
	parser := parserFor(path)
	if parser == nil {
		return domain.Zone{}, false, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return domain.Zone{}, false, fmt.Errorf("failed to load zone file %s: %w", path, err)
	}

	z, err = l.parseZone(k)
	if err != nil {
		return domain.Zone{}, false, err
	}
	return z, true, nil
}

// parserFor selects a koanf parser from the file extension, or nil if unsupported.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return nil
	}
}

func (l *Loader) parseZone(k *koanf.Koanf) (domain.Zone, error) {
	origin := strings.TrimSpace(k.String(originKey))
	if origin == "" {
		return domain.Zone{}, ErrMissingOrigin
	}
	origin = utils.Fqdn(origin)

	if utils.IsPublicSuffix(origin) {
		l.Logger.Warn(map[string]any{"origin": origin}, "zone origin is a public suffix")
	}

	raw := k.Raw()
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make(map[domain.RRType][]domain.ZoneRecord)
	for _, key := range keys {
		if key == originKey {
			continue
		}
		rrType := domain.RRTypeFromString(key)
		if rrType == 0 {
			l.Logger.Warn(map[string]any{"origin": origin, "key": key}, "skipping unknown record type")
			continue
		}
		set, err := l.parseRecordSet(rrType, raw[key])
		if err != nil {
			return domain.Zone{}, fmt.Errorf("%s %s: %w", origin, rrType, err)
		}
		if !rrdata.Supported(rrType) {
			l.Logger.Debug(map[string]any{"origin": origin, "type": rrType.String()}, "record type is loaded but not answered")
		}
		records[rrType] = append(records[rrType], set...)
	}

	return domain.NewZone(origin, records)
}

// parseRecordSet reads a list of {ttl, value} entries.
func (l *Loader) parseRecordSet(rrType domain.RRType, raw any) ([]domain.ZoneRecord, error) {
	entries, err := toEntries(raw)
	if err != nil {
		return nil, err
	}

	set := make([]domain.ZoneRecord, 0, len(entries))
	for i, entry := range entries {
		ek := koanf.New(".")
		if err := ek.Load(confmap.Provider(entry, ""), nil); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidRecord, i, err)
		}

		value := strings.TrimSpace(ek.String("value"))
		if value == "" {
			return nil, fmt.Errorf("%w: entry %d has no value", ErrInvalidRecord, i)
		}
		if rrdata.Supported(rrType) {
			if _, err := rrdata.Encode(rrType, value); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
		}

		ttl := l.DefaultTTL
		if ek.Exists("ttl") {
			n, ok := ttlSeconds(ek.Get("ttl"))
			if !ok {
				return nil, fmt.Errorf("%w: entry %d ttl %v is not a whole number", ErrInvalidRecord, i, ek.Get("ttl"))
			}
			if n < 0 || n > math.MaxInt32 {
				return nil, fmt.Errorf("%w: entry %d ttl %d out of range", ErrInvalidRecord, i, n)
			}
			ttl = uint32(n)
		}

		set = append(set, domain.ZoneRecord{TTL: ttl, Value: value})
	}
	return set, nil
}

// ttlSeconds accepts the integer shapes the JSON, YAML and TOML parsers produce.
// JSON numbers arrive as float64 and must be integral.
func ttlSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// toEntries normalizes the parsed list shapes of the three formats.
func toEntries(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, elem := range v {
			m, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: entry %d is not an object", ErrInvalidRecord, i)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: record set must be a list", ErrInvalidRecord)
	}
}
