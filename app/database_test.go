package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dan13ram/spaceship-staking/models"
)

func TestNewMongoDatabase(t *testing.T) {
	Config.MongoDB = models.MongoConfig{
		URI:           "mongodb://localhost:27017",
		Database:      "spaceship-staking",
		TimeoutMillis: 1234,
		LockTTLSecs:   30,
	}
	defer func() { Config.MongoDB = models.MongoConfig{} }()

	d := newMongoDatabase()

	assert.Equal(t, "mongodb://localhost:27017", d.uri)
	assert.Equal(t, "spaceship-staking", d.database)
	assert.Equal(t, 1234*time.Millisecond, d.timeout)
	assert.Equal(t, uint(30), d.lockTTL)
	assert.Nil(t, d.db)
	assert.Nil(t, d.locker)
}
