// Package local implements the plant store on top of an embedded Badger
// database. The whole garden for all owners lives under a single key as one
// serialized collection, mirroring how a device-resident store keeps state:
// every mutation is a read-modify-write of that one value inside a Badger
// transaction, so mutations are serialized by construction.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

var collectionKey = []byte("leaflink/plants")

type Store struct {
	db  *badger.DB
	log *slog.Logger
}

// Open opens or creates the database at path.
func Open(path string, log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}

	return &Store{
		db:  db,
		log: log.With("store", "local"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// record is the stored shape of a plant. Field names match the serialized
// collection format so existing data files keep loading across versions.
type record struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            string    `json:"userId"`
	Name               string    `json:"name"`
	Species            string    `json:"species"`
	WaterFrequencyDays int       `json:"waterFrequencyDays"`
	LastWateredDate    time.Time `json:"lastWateredDate"`
	ImageURL           *string   `json:"imageUrl,omitempty"`
	LightNeeds         *string   `json:"lightNeeds,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toRecord(p domain.Plant) record {
	return record(p)
}

func (r record) toDomain() domain.Plant {
	return domain.Plant(r)
}

func (s *Store) List(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	var all []record

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		all, err = readCollection(txn)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}

	plants := make([]domain.Plant, 0, len(all))
	for _, r := range all {
		if r.OwnerID == ownerID {
			plants = append(plants, r.toDomain())
		}
	}

	sort.SliceStable(plants, func(i, j int) bool {
		return plants[i].CreatedAt.After(plants[j].CreatedAt)
	})

	return plants, nil
}

func (s *Store) Create(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		all, err := readCollection(txn)
		if err != nil {
			return err
		}
		for _, r := range all {
			if r.ID == p.ID {
				return domain.ErrAlreadyExists
			}
		}
		all = append([]record{toRecord(p)}, all...)
		return writeCollection(txn, all)
	})
	if err != nil {
		return domain.Plant{}, fmt.Errorf("create plant: %w", err)
	}

	return p, nil
}

func (s *Store) Update(ctx context.Context, p domain.Plant) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		all, err := readCollection(txn)
		if err != nil {
			return err
		}
		for i, r := range all {
			if r.ID == p.ID {
				all[i] = toRecord(p)
				return writeCollection(txn, all)
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("update plant %s: %w", p.ID, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		all, err := readCollection(txn)
		if err != nil {
			return err
		}
		kept := all[:0]
		for _, r := range all {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		return writeCollection(txn, kept)
	})
	if err != nil {
		return fmt.Errorf("delete plant %s: %w", id, err)
	}

	return nil
}

func readCollection(txn *badger.Txn) ([]record, error) {
	item, err := txn.Get(collectionKey)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	var all []record
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	return all, nil
}

func writeCollection(txn *badger.Txn, all []record) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return txn.Set(collectionKey, data)
}
