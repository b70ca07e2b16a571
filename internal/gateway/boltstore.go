package gateway

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var localStorageBucket = []byte("local_storage")

// BoltTokenStore keeps the bearer token in a bbolt file so a CLI session
// survives restarts.
type BoltTokenStore struct {
	db *bolt.DB
}

func OpenBoltTokenStore(path string) (*BoltTokenStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create token dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(localStorageBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltTokenStore{db: db}, nil
}

func (s *BoltTokenStore) Get() (string, error) {
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(localStorageBucket).Get([]byte(TokenKey)); v != nil {
			token = string(v)
		}
		return nil
	})
	return token, err
}

func (s *BoltTokenStore) Set(token string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(localStorageBucket).Put([]byte(TokenKey), []byte(token))
	})
}

func (s *BoltTokenStore) Delete() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(localStorageBucket).Delete([]byte(TokenKey))
	})
}

func (s *BoltTokenStore) Close() error {
	return s.db.Close()
}
