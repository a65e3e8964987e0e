// Package modelstore provides persistent storage for serialized forest
// models. It uses BoltDB as the underlying storage engine so fitted forests
// can be saved by name and restored for inference without retraining.
package modelstore

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	tsforest "github.com/aouyang1/go-tsforest"
)

const modelsBucket = "models"

var (
	ErrModelNotFound = errors.New("model not found")
	ErrNoModelName   = errors.New("no model name")
)

// Store persists serialized forest models in a single BoltDB file keyed by
// model name.
type Store struct {
	db *bbolt.DB
}

// New creates a new storage instance under the specified data path. It
// initializes the BoltDB database and creates the models bucket if needed.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "tsforest-models.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("unable to open model database, %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(modelsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create models bucket, %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection. It should be called when the store is
// no longer needed.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save serializes the forest model and stores it under the given name,
// overwriting any previous model with the same name.
func (s *Store) Save(name string, model tsforest.Model) error {
	if name == "" {
		return ErrNoModelName
	}
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("unable to serialize model %q, %w", name, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(modelsBucket)).Put([]byte(name), data)
	})
}

// Load retrieves and deserializes the forest model stored under the given
// name.
func (s *Store) Load(name string) (tsforest.Model, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket([]byte(modelsBucket)).Get([]byte(name))
		if stored == nil {
			return fmt.Errorf("%q, %w", name, ErrModelNotFound)
		}
		data = make([]byte, len(stored))
		copy(data, stored)
		return nil
	})
	if err != nil {
		return tsforest.Model{}, err
	}

	var model tsforest.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return tsforest.Model{}, fmt.Errorf("unable to deserialize model %q, %w", name, err)
	}
	return model, nil
}

// List returns the names of all stored models in key order.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(modelsBucket)).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes the model stored under the given name. Deleting a missing
// name is not an error.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(modelsBucket)).Delete([]byte(name))
	})
}
