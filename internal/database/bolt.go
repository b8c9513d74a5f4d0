package database

import (
	"bytes"
	"errors"
	"time"

	"go.etcd.io/bbolt"
)

const bucketBackups = "backups"

// Bolt is the bbolt-backed Store implementation. A single bucket holds every
// backup record; meta and data records for one backup share a key prefix so a
// prefix scan finds both.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBackups))

		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

// Get returns the value stored under key, or nil if the key is absent.
func (b *Bolt) Get(key string) ([]byte, error) {
	var out []byte

	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(bucketBackups)).Get([]byte(key))

		if v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}

		return nil
	})

	return out, err
}

func (b *Bolt) Put(key string, value []byte) error {
	if key == "" {
		return errors.New("key is required")
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketBackups)).Put([]byte(key), value)
	})
}

func (b *Bolt) PutAll(entries map[string][]byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketBackups))

		for k, v := range entries {
			if k == "" {
				return errors.New("key is required")
			}

			if err := bucket.Put([]byte(k), v); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *Bolt) Delete(keys ...string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketBackups))

		for _, k := range keys {
			if err := bucket.Delete([]byte(k)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *Bolt) Scan(prefix string, fn func(key string, value []byte) error) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketBackups)).Cursor()

		p := []byte(prefix)

		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			if err := fn(string(k), v); err != nil {
				return err
			}
		}

		return nil
	})
}
