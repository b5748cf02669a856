// Package archive persists the settlement record of every concluded auction
// in an embedded BoltDB file. Records are CBOR-encoded and keyed by
// big-endian auction id, so listing returns them in conclusion order. The
// archive is append-only history: records are written once at conclusion
// and never mutated.
package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/fxamacker/cbor/v2"

	"github.com/cloudx-io/vickrey/registry"
)

const bucketName = "settlements"

// ErrNotFound is returned when no record exists for the requested auction.
var ErrNotFound = errors.New("settlement record not found")

// ItemResult is one item's archived outcome. Amounts are decimal strings.
type ItemResult struct {
	Index         int    `cbor:"index"`
	Description   string `cbor:"description"`
	HasWinner     bool   `cbor:"has_winner"`
	Winner        string `cbor:"winner,omitempty"`
	ClearingPrice string `cbor:"clearing_price,omitempty"`
}

// Record is the archived settlement of one concluded auction.
type Record struct {
	AuctionID   uint64       `cbor:"auction_id"`
	Name        string       `cbor:"name"`
	Creator     string       `cbor:"creator"`
	ConcludedAt time.Time    `cbor:"concluded_at"`
	Revenue     string       `cbor:"revenue"`
	Items       []ItemResult `cbor:"items"`
}

// NewRecord converts a registry settlement summary into its archive form.
func NewRecord(s *registry.Settlement) Record {
	rec := Record{
		AuctionID:   s.AuctionID,
		Name:        s.Name,
		Creator:     s.Creator,
		ConcludedAt: s.ConcludedAt,
		Revenue:     s.Revenue.String(),
		Items:       make([]ItemResult, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		res := ItemResult{
			Index:       it.Index,
			Description: it.Description,
			HasWinner:   it.HasWinner,
			Winner:      it.Winner,
		}
		if it.HasWinner {
			res.ClearingPrice = it.ClearingPrice.String()
		}
		rec.Items = append(rec.Items, res)
	}
	return rec
}

// Store wraps a BoltDB database holding settlement records.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the archive at the given path and ensures the
// settlements bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes the record for its auction id. Writing the same record again
// is a no-op overwrite, so retrying a failed archival is safe.
func (s *Store) Put(rec Record) error {
	data, err := cbor.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Put(key(rec.AuctionID), data)
	})
}

// Get retrieves the record for an auction id. Returns ErrNotFound if the
// auction was never archived.
func (s *Store) Get(auctionID uint64) (*Record, error) {
	var rec Record

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		v := b.Get(key(auctionID))
		if v == nil {
			return ErrNotFound
		}
		return cbor.Unmarshal(v, &rec)
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// List returns every archived record in auction id order.
func (s *Store) List() ([]Record, error) {
	records := []Record{}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var rec Record
			if err := cbor.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func key(auctionID uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, auctionID)
	return k
}
