package api

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dan13ram/spaceship-staking/app"
	"github.com/dan13ram/spaceship-staking/models"
)

// NonceStore remembers signed requests so each one is accepted only once.
type NonceStore interface {
	// Use marks hash as used until expiresAt and reports whether it was still unused.
	Use(hash string, address common.Address, expiresAt time.Time) (bool, error)
}

// requestHash identifies a signed request by its signer and signed digest. The signature
// itself is left out since (r, s) and (r, n-s) verify the same digest.
func requestHash(address common.Address, digest []byte) string {
	return crypto.Keccak256Hash(address.Bytes(), digest).Hex()
}

// DatabaseNonceStore keeps used requests in mongo. A unique index on the hash rejects
// a second use and a TTL index on expires_at drops the entry once it can no longer be replayed.
type DatabaseNonceStore struct {
	db    app.Database
	clock clockwork.Clock
}

var _ NonceStore = &DatabaseNonceStore{}

func NewDatabaseNonceStore(db app.Database, clock clockwork.Clock) *DatabaseNonceStore {
	return &DatabaseNonceStore{db: db, clock: clock}
}

func (s *DatabaseNonceStore) Use(hash string, address common.Address, expiresAt time.Time) (bool, error) {
	err := s.db.InsertOne(models.CollectionRequestNonces, models.RequestNonce{
		Hash:      hash,
		Address:   address.Hex(),
		ExpiresAt: expiresAt,
		CreatedAt: s.clock.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryNonceStore is a NonceStore for a single instance.
type MemoryNonceStore struct {
	mu    sync.Mutex
	clock clockwork.Clock
	used  map[string]time.Time
}

var _ NonceStore = &MemoryNonceStore{}

func NewMemoryNonceStore(clock clockwork.Clock) *MemoryNonceStore {
	return &MemoryNonceStore{clock: clock, used: make(map[string]time.Time)}
}

func (s *MemoryNonceStore) Use(hash string, address common.Address, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for h, expiry := range s.used {
		if !now.Before(expiry) {
			delete(s.used, h)
		}
	}

	if _, ok := s.used[hash]; ok {
		return false, nil
	}
	s.used[hash] = expiresAt
	return true, nil
}
