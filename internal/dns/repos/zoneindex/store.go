package zoneindex

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
	bberrors "go.etcd.io/bbolt/errors"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

var (
	bucketZones = []byte("zones")
	bucketMeta  = []byte("meta")

	keyVersion = []byte("version")
	keyUpdated = []byte("updated")
)

// StoreStats captures counts and metadata for the persisted snapshot.
type StoreStats struct {
	Zones       uint64 `json:"zones"`
	Version     uint64 `json:"version"`
	UpdatedUnix int64  `json:"updated_unix"`
}

// boltStore persists zones keyed by origin, JSON-encoded.
type boltStore struct {
	db *bbolt.DB
}

// openStore opens (or creates) a Bolt database at path and ensures buckets exist.
func openStore(path string) (*boltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketZones); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

// Get returns the zone stored under origin.
func (s *boltStore) Get(origin string) (domain.Zone, bool, error) {
	var (
		z     domain.Zone
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketZones)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(origin))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &z)
	})
	if err != nil {
		return domain.Zone{}, false, fmt.Errorf("read zone %q: %w", origin, err)
	}
	return z, found, nil
}

// Origins lists stored origins in key order.
func (s *boltStore) Origins() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketZones)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}

// RebuildAll replaces the snapshot with zones in a single transaction.
// The version counter is bumped on every rebuild.
func (s *boltStore) RebuildAll(zones []domain.Zone, updatedUnix int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketZones); err != nil && !errors.Is(err, bberrors.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(bucketZones)
		if err != nil {
			return err
		}
		for _, z := range zones {
			v, err := json.Marshal(z)
			if err != nil {
				return fmt.Errorf("encode zone %q: %w", z.Origin, err)
			}
			if err := b.Put([]byte(z.Origin), v); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		var version uint64
		if v := meta.Get(keyVersion); len(v) == 8 {
			version = binary.BigEndian.Uint64(v)
		}
		if err := meta.Put(keyVersion, binary.BigEndian.AppendUint64(nil, version+1)); err != nil {
			return err
		}
		return meta.Put(keyUpdated, binary.BigEndian.AppendUint64(nil, uint64(updatedUnix))) //nolint:gosec // unix seconds are positive
	})
}

func (s *boltStore) Stats() StoreStats {
	st := StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketZones); b != nil {
			st.Zones = uint64(b.Stats().KeyN) //nolint:gosec // key count is non-negative
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(keyVersion); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(keyUpdated); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v)) //nolint:gosec // written from int64
			}
		}
		return nil
	})
	return st
}
