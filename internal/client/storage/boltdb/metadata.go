package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/phoneauth/internal/crypto"
)

var keyStorageSalt = []byte("storage_salt")

// GetOrCreateSalt returns the per-database salt used to derive the token
// encryption key, generating and persisting it on first use
func (s *Storage) GetOrCreateSalt(ctx context.Context) ([]byte, error) {
	var salt []byte

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if existing := bucket.Get(keyStorageSalt); existing != nil {
			// bbolt values are only valid inside the transaction
			salt = append([]byte(nil), existing...)
			return nil
		}

		generated, err := crypto.GenerateSalt()
		if err != nil {
			return err
		}
		if err := bucket.Put(keyStorageSalt, generated); err != nil {
			return fmt.Errorf("failed to save storage salt: %w", err)
		}
		salt = generated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get storage salt: %w", err)
	}

	return salt, nil
}
