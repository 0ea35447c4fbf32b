package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"scorecast/domain"
	apperrors "scorecast/errors"
)

type IMatchRepository interface {
	Save(m domain.MatchState) error
	Load(id string) (domain.MatchState, error)
	List() ([]domain.MatchState, error)
}

// MatchRepository persists match documents in BadgerDB under "match:{id}".
// Values are the JSON document shape the REST snapshot exposes, so the
// free-form matchData payload round-trips verbatim.
type MatchRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMatchRepository(db *badger.DB, log *slog.Logger) MatchRepository {
	return MatchRepository{db: db, log: log}
}

func matchKey(id string) []byte {
	return []byte("match:" + id)
}

// Save writes the full document. The store serializes mutations per match,
// so last-write-wins at this layer is safe.
func (r MatchRepository) Save(m domain.MatchState) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal match %s: %w", m.ID, err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(matchKey(m.ID), data)
	})
}

func (r MatchRepository) Load(id string) (domain.MatchState, error) {
	var m domain.MatchState
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(matchKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return apperrors.ErrMatchNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &m)
		})
	})
	if err != nil {
		return domain.MatchState{}, err
	}
	return m, nil
}

// List scans every stored match document. Called once at boot to rebuild
// the in-memory canonical state.
func (r MatchRepository) List() ([]domain.MatchState, error) {
	var matches []domain.MatchState
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("match:")
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var m domain.MatchState
				if err := json.Unmarshal(v, &m); err != nil {
					return fmt.Errorf("failed to unmarshal match document: %w", err)
				}
				matches = append(matches, m)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during match scan: %w", err)
	}
	return matches, nil
}
