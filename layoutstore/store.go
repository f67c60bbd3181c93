// Package layoutstore persists layout records in a bbolt file. A record is
// the layout's source text plus whatever the schema compiler recovered from
// it; the store itself knows nothing about compilation and just moves bytes.
package layoutstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

// ErrNotFound reports a lookup of a layout id the store has never seen, or
// one that was deleted.
var ErrNotFound = errors.New("layout not found")

var (
	bucketKeyVersion = []byte("v1")
	bucketKeyLayouts = []byte("layouts")
)

// Record is one stored layout.
type Record struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Source      string           `json:"source"`
	Schema      *openapi3.Schema `json:"schema,omitempty"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Store wraps the bbolt handle. It is safe for concurrent use; bbolt
// serializes writers internally.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the bbolt file at path and makes sure the layout
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := createBucketIfNotExists(tx, bucketKeyVersion, bucketKeyLayouts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init layout store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes the record under its id, stamping UpdatedAt.
func (s *Store) Put(rec Record) error {
	if rec.ID == "" {
		return errors.New("layout id is empty")
	}
	rec.UpdatedAt = time.Now().UTC()
	bs, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encode layout %s: %w", rec.ID, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := getLayoutsBucket(tx)
		if bkt == nil {
			return ErrNotFound
		}
		return bkt.Put([]byte(rec.ID), bs)
	})
}

// Get returns the record stored under id.
func (s *Store) Get(id string) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := getLayoutsBucket(tx)
		if bkt == nil {
			return ErrNotFound
		}
		bs := bkt.Get([]byte(id))
		if bs == nil {
			return ErrNotFound
		}
		return json.Unmarshal(bs, &rec)
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns every stored record, ordered by id.
func (s *Store) List() ([]Record, error) {
	var recs []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := getLayoutsBucket(tx)
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(_, bs []byte) error {
			var rec Record
			if err := json.Unmarshal(bs, &rec); err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Delete removes the record stored under id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := getLayoutsBucket(tx)
		if bkt == nil || bkt.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return bkt.Delete([]byte(id))
	})
}

func getLayoutsBucket(tx *bolt.Tx) *bolt.Bucket {
	return getBucket(tx, bucketKeyVersion, bucketKeyLayouts)
}

func getBucket(tx *bolt.Tx, keys ...[]byte) *bolt.Bucket {
	bkt := tx.Bucket(keys[0])
	for _, key := range keys[1:] {
		if bkt == nil {
			break
		}
		bkt = bkt.Bucket(key)
	}
	return bkt
}

func createBucketIfNotExists(tx *bolt.Tx, keys ...[]byte) (*bolt.Bucket, error) {
	bkt, err := tx.CreateBucketIfNotExists(keys[0])
	if err != nil {
		return nil, err
	}
	for _, key := range keys[1:] {
		bkt, err = bkt.CreateBucketIfNotExists(key)
		if err != nil {
			return nil, err
		}
	}
	return bkt, nil
}
