package ledger

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dan13ram/spaceship-staking/app"
	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/models"
)

// MongoStore persists ledger state through app.Database. Uniqueness of mission ids,
// launch keys and payment references is backed by the indexes from SetupIndexes.
type MongoStore struct {
	db app.Database
}

var _ Store = &MongoStore{}

func NewMongoStore(db app.Database) *MongoStore {
	return &MongoStore{db: db}
}

func launchFilter(key LaunchKey) bson.M {
	return bson.M{
		"user":       key.User.Hex(),
		"mission_id": key.MissionID,
		"index":      key.Index,
	}
}

func mapFindError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	return err
}

func (s *MongoStore) CountMissions(ctx context.Context) (uint64, error) {
	count, err := s.db.CountDocuments(models.CollectionMissions, bson.M{})
	return uint64(count), err
}

func (s *MongoStore) InsertMission(ctx context.Context, mission *models.Mission) error {
	err := s.db.InsertOne(models.CollectionMissions, mission)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (s *MongoStore) FindMission(ctx context.Context, missionID uint64) (*models.Mission, error) {
	var mission models.Mission
	err := s.db.FindOne(models.CollectionMissions, bson.M{"mission_id": missionID}, &mission)
	if err != nil {
		return nil, mapFindError(err)
	}
	return &mission, nil
}

func (s *MongoStore) ListMissions(ctx context.Context) ([]models.Mission, error) {
	missions := []models.Mission{}
	err := s.db.FindMany(models.CollectionMissions, bson.M{}, bson.D{{Key: "mission_id", Value: 1}}, &missions)
	return missions, err
}

func (s *MongoStore) SetMissionEnabled(ctx context.Context, missionID uint64, enabled bool, now time.Time) error {
	matched, err := s.db.UpdateOne(
		models.CollectionMissions,
		bson.M{"mission_id": missionID},
		bson.M{"$set": bson.M{"enabled": enabled, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoStore) CreateLaunch(ctx context.Context, launch *models.Launch) (bool, error) {
	err := s.db.InsertOne(models.CollectionLaunches, launch)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "payment_reference") {
				return false, ErrDuplicateReference
			}
			return false, ErrDuplicateKey
		}
		return false, err
	}

	// every launch upserts its launcher, so a failure here heals on the user's next launch
	firstLaunch, err := s.db.UpsertOne(
		models.CollectionLaunchers,
		bson.M{"user": launch.User},
		bson.M{"$setOnInsert": bson.M{"user": launch.User, "first_launch_at": launch.CreatedAt}},
	)
	if err != nil {
		log.WithError(err).WithField("user", launch.User).Error("[LEDGER] Error recording launcher")
		return false, nil
	}
	return firstLaunch, nil
}

func (s *MongoStore) FindLaunch(ctx context.Context, key LaunchKey) (*models.Launch, error) {
	var launch models.Launch
	err := s.db.FindOne(models.CollectionLaunches, launchFilter(key), &launch)
	if err != nil {
		return nil, mapFindError(err)
	}
	return &launch, nil
}

func (s *MongoStore) CountLaunches(ctx context.Context, user common.Address, missionID uint64) (uint64, error) {
	count, err := s.db.CountDocuments(models.CollectionLaunches, bson.M{"user": user.Hex(), "mission_id": missionID})
	return uint64(count), err
}

func (s *MongoStore) CountMissionLaunches(ctx context.Context, missionID uint64) (uint64, error) {
	count, err := s.db.CountDocuments(models.CollectionLaunches, bson.M{"mission_id": missionID})
	return uint64(count), err
}

func (s *MongoStore) ListLaunchesOfUser(ctx context.Context, user common.Address) ([]models.Launch, error) {
	launches := []models.Launch{}
	sort := bson.D{{Key: "created_at", Value: 1}, {Key: "mission_id", Value: 1}, {Key: "index", Value: 1}}
	err := s.db.FindMany(models.CollectionLaunches, bson.M{"user": user.Hex()}, sort, &launches)
	return launches, err
}

func (s *MongoStore) PaymentReferenceUsed(ctx context.Context, reference string) (bool, error) {
	count, err := s.db.CountDocuments(models.CollectionLaunches, bson.M{"payment_reference": reference})
	return count > 0, err
}

func (s *MongoStore) SumNativePayments(ctx context.Context) (*big.Int, error) {
	launches := []models.Launch{}
	err := s.db.FindMany(models.CollectionLaunches, bson.M{"native_payment": bson.M{"$ne": "0"}}, bson.D{{Key: "created_at", Value: 1}}, &launches)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	for _, launch := range launches {
		amount, err := commonutil.ParseAmount(launch.NativePayment)
		if err != nil {
			return nil, err
		}
		total.Add(total, amount)
	}
	return total, nil
}

func (s *MongoStore) CountLaunchers(ctx context.Context) (uint64, error) {
	count, err := s.db.CountDocuments(models.CollectionLaunchers, bson.M{})
	return uint64(count), err
}

func (s *MongoStore) MarkRewardClaimed(ctx context.Context, key LaunchKey, now time.Time) error {
	filter := launchFilter(key)
	filter["reward_claimed"] = false

	matched, err := s.db.UpdateOne(
		models.CollectionLaunches,
		filter,
		bson.M{"$set": bson.M{"reward_claimed": true, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrConflict
	}
	return nil
}

func (s *MongoStore) RecordMinted(ctx context.Context, key LaunchKey, mintedCount uint64, tokensMinted bool, now time.Time) error {
	filter := launchFilter(key)
	filter["tokens_minted"] = false

	matched, err := s.db.UpdateOne(
		models.CollectionLaunches,
		filter,
		bson.M{"$set": bson.M{"minted_count": mintedCount, "tokens_minted": tokensMinted, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrConflict
	}
	return nil
}
