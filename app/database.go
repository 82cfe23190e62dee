package app

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	lock "github.com/square/mongo-lock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/dan13ram/spaceship-staking/models"
)

type Database interface {
	Connect() error
	SetupLockers() error
	SetupIndexes() error
	Disconnect() error
	InsertOne(collection string, data interface{}) error
	FindOne(collection string, filter interface{}, result interface{}) error
	FindMany(collection string, filter interface{}, sort interface{}, result interface{}) error
	UpdateOne(collection string, filter interface{}, update interface{}) (int64, error)
	UpsertOne(collection string, filter interface{}, update interface{}) (bool, error)
	CountDocuments(collection string, filter interface{}) (int64, error)

	XLock(resourceId string) (string, error)
	Renew(lockId string) error
	Unlock(lockId string) error
}

// mongoDatabase is a wrapper around the mongo database
type mongoDatabase struct {
	db       *mongo.Database
	uri      string
	database string
	timeout  time.Duration
	lockTTL  uint
	locker   *lock.Client
}

var (
	DB Database
)

// Connect connects to the database
func (d *mongoDatabase) Connect() error {
	log.Debug("[DB] Connecting to database")
	wcMajority := writeconcern.Majority()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.uri).SetWriteConcern(wcMajority).SetTimeout(d.timeout))
	if err != nil {
		return err
	}
	d.db = client.Database(d.database)

	log.Info("[DB] Connected to mongo database: ", d.database)
	return nil
}

// SetupLockers sets up the locker
func (d *mongoDatabase) SetupLockers() error {
	log.Debug("[DB] Setting up locker")

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	locker := lock.NewClient(d.db.Collection("locks"))
	if err := locker.CreateIndexes(ctx); err != nil {
		return err
	}
	d.locker = locker

	log.Info("[DB] Locker setup")
	return nil
}

func (d *mongoDatabase) acquire(resourceId string, acquire func(ctx context.Context, lockId string) error) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	return backoff.Retry(ctx, func() (string, error) {
		lockId := uuid.NewString()
		err := acquire(ctx, lockId)
		if err == nil {
			return lockId, nil
		}
		if errors.Is(err, lock.ErrAlreadyLocked) {
			log.Debug("[DB] Resource is locked, retrying: ", resourceId)
			return "", err
		}
		return "", backoff.Permanent(err)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(d.timeout))
}

// XLock locks a resource for exclusive access
func (d *mongoDatabase) XLock(resourceId string) (string, error) {
	return d.acquire(resourceId, func(ctx context.Context, lockId string) error {
		return d.locker.XLock(ctx, resourceId, lockId, lock.LockDetails{TTL: d.lockTTL})
	})
}

// Renew extends the TTL of every lock held under lockId
func (d *mongoDatabase) Renew(lockId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	_, err := d.locker.Renew(ctx, lockId, d.lockTTL)
	return err
}

// Unlock unlocks a resource
func (d *mongoDatabase) Unlock(lockId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	_, err := d.locker.Unlock(ctx, lockId)
	return err
}

func (d *mongoDatabase) createUniqueIndex(collection string, keys bson.D, partial interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	opts := options.Index().SetUnique(true)
	if partial != nil {
		opts.SetPartialFilterExpression(partial)
	}
	_, err := d.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	})
	return err
}

func (d *mongoDatabase) createTTLIndex(collection string, key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	_, err := d.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: key, Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// SetupIndexes creates the unique indexes the ledger relies on for id and claim uniqueness
func (d *mongoDatabase) SetupIndexes() error {
	log.Debug("[DB] Setting up indexes")

	log.Debug("[DB] Setting up indexes for missions")
	if err := d.createUniqueIndex(models.CollectionMissions, bson.D{{Key: "mission_id", Value: 1}}, nil); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for launches")
	if err := d.createUniqueIndex(models.CollectionLaunches, bson.D{
		{Key: "user", Value: 1},
		{Key: "mission_id", Value: 1},
		{Key: "index", Value: 1},
	}, nil); err != nil {
		return err
	}
	if err := d.createUniqueIndex(models.CollectionLaunches, bson.D{{Key: "payment_reference", Value: 1}},
		bson.M{"payment_reference": bson.M{"$type": "string"}}); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for launchers")
	if err := d.createUniqueIndex(models.CollectionLaunchers, bson.D{{Key: "user", Value: 1}}, nil); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for pool deposits")
	if err := d.createUniqueIndex(models.CollectionPoolDeposits, bson.D{
		{Key: "transaction_hash", Value: 1},
		{Key: "log_index", Value: 1},
	}, nil); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for request nonces")
	if err := d.createUniqueIndex(models.CollectionRequestNonces, bson.D{{Key: "hash", Value: 1}}, nil); err != nil {
		return err
	}
	if err := d.createTTLIndex(models.CollectionRequestNonces, "expires_at"); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for healthchecks")
	if err := d.createUniqueIndex(models.CollectionHealthChecks, bson.D{
		{Key: "instance_id", Value: 1},
		{Key: "hostname", Value: 1},
	}, nil); err != nil {
		return err
	}

	log.Info("[DB] Indexes setup")
	return nil
}

// Disconnect disconnects from the database
func (d *mongoDatabase) Disconnect() error {
	log.Debug("[DB] Disconnecting from database")
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	err := d.db.Client().Disconnect(ctx)
	log.Info("[DB] Disconnected from database")
	return err
}

// method for insert single value in a collection
func (d *mongoDatabase) InsertOne(collection string, data interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	_, err := d.db.Collection(collection).InsertOne(ctx, data)
	return err
}

// method for find single value in a collection
func (d *mongoDatabase) FindOne(collection string, filter interface{}, result interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	err := d.db.Collection(collection).FindOne(ctx, filter).Decode(result)
	return err
}

// method for find multiple values in a collection
func (d *mongoDatabase) FindMany(collection string, filter interface{}, sort interface{}, result interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := d.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	err = cursor.All(ctx, result)
	return err
}

// method for update single value in a collection, returns the matched count
func (d *mongoDatabase) UpdateOne(collection string, filter interface{}, update interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	result, err := d.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// method for upsert single value in a collection, reports whether a document was inserted
func (d *mongoDatabase) UpsertOne(collection string, filter interface{}, update interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	result, err := d.db.Collection(collection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (d *mongoDatabase) CountDocuments(collection string, filter interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.db.Collection(collection).CountDocuments(ctx, filter)
}

func newMongoDatabase() *mongoDatabase {
	return &mongoDatabase{
		uri:      Config.MongoDB.URI,
		database: Config.MongoDB.Database,
		timeout:  time.Duration(Config.MongoDB.TimeoutMillis) * time.Millisecond,
		lockTTL:  Config.MongoDB.LockTTLSecs,
	}
}

// InitDB creates a new database wrapper
func InitDB() {
	DB = newMongoDatabase()

	err := DB.Connect()
	if err != nil {
		log.Fatal("[DB] Error connecting to database: ", err)
	}
	err = DB.SetupIndexes()
	if err != nil {
		log.Fatal("[DB] Error setting up indexes: ", err)
	}
	err = DB.SetupLockers()
	if err != nil {
		log.Fatal("[DB] Error setting up locker: ", err)
	}
	log.Info("[DB] Database initialized")
}
