package db

import (
	"github.com/boltdb/bolt"
)

var sweepsBucket = []byte("Sweeps")

func Connect(path string) (*bolt.DB, error) {
	return bolt.Open(path, 0600, nil)
}
