package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dan13ram/spaceship-staking/app/mocks"
	"github.com/dan13ram/spaceship-staking/models"
)

func duplicateKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: launches index: " + index + " dup key",
		}},
	}
}

func TestMongoStore_CountMissions(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	store := NewMongoStore(mockDB)

	mockDB.EXPECT().CountDocuments(models.CollectionMissions, bson.M{}).Return(int64(4), nil).Once()

	count, err := store.CountMissions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func TestMongoStore_InsertMission(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	store := NewMongoStore(mockDB)
	mission := &models.Mission{MissionID: 1}

	mockDB.EXPECT().InsertOne(models.CollectionMissions, mission).Return(duplicateKeyError("mission_id_1")).Once()

	err := store.InsertMission(context.Background(), mission)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMongoStore_FindMission(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().FindOne(models.CollectionMissions, bson.M{"mission_id": uint64(2)}, mock.Anything).
			Run(func(_ string, _ interface{}, result interface{}) {
				result.(*models.Mission).MissionID = 2
				result.(*models.Mission).Enabled = true
			}).Return(nil).Once()

		mission, err := store.FindMission(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint64(2), mission.MissionID)
		assert.True(t, mission.Enabled)
	})

	t.Run("Missing", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().FindOne(models.CollectionMissions, bson.M{"mission_id": uint64(2)}, mock.Anything).Return(mongo.ErrNoDocuments).Once()

		_, err := store.FindMission(context.Background(), 2)
		assert.ErrorIs(t, err, ErrNoDocument)
	})
}

func TestMongoStore_SetMissionEnabled(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	store := NewMongoStore(mockDB)
	now := time.Now()

	mockDB.EXPECT().UpdateOne(
		models.CollectionMissions,
		bson.M{"mission_id": uint64(3)},
		bson.M{"$set": bson.M{"enabled": false, "updated_at": now}},
	).Return(int64(0), nil).Once()

	err := store.SetMissionEnabled(context.Background(), 3, false, now)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestMongoStore_CreateLaunch(t *testing.T) {
	now := time.Now()
	launch := &models.Launch{User: aliceAddress.Hex(), MissionID: 1, Index: 0, CreatedAt: now}
	launcherFilter := bson.M{"user": aliceAddress.Hex()}
	launcherUpdate := bson.M{"$setOnInsert": bson.M{"user": aliceAddress.Hex(), "first_launch_at": now}}

	t.Run("First Launch", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().InsertOne(models.CollectionLaunches, launch).Return(nil).Once()
		mockDB.EXPECT().UpsertOne(models.CollectionLaunchers, launcherFilter, launcherUpdate).Return(true, nil).Once()

		first, err := store.CreateLaunch(context.Background(), launch)
		assert.NoError(t, err)
		assert.True(t, first)
	})

	t.Run("Launcher Error Is Tolerated", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().InsertOne(models.CollectionLaunches, launch).Return(nil).Once()
		mockDB.EXPECT().UpsertOne(models.CollectionLaunchers, launcherFilter, launcherUpdate).Return(false, errors.New("timeout")).Once()

		first, err := store.CreateLaunch(context.Background(), launch)
		assert.NoError(t, err)
		assert.False(t, first)
	})

	t.Run("Duplicate Reference", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().InsertOne(models.CollectionLaunches, launch).Return(duplicateKeyError("payment_reference_1")).Once()

		_, err := store.CreateLaunch(context.Background(), launch)
		assert.ErrorIs(t, err, ErrDuplicateReference)
	})

	t.Run("Duplicate Key", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().InsertOne(models.CollectionLaunches, launch).Return(duplicateKeyError("user_1_mission_id_1_index_1")).Once()

		_, err := store.CreateLaunch(context.Background(), launch)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})
}

func TestMongoStore_SumNativePayments(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	store := NewMongoStore(mockDB)

	mockDB.EXPECT().FindMany(models.CollectionLaunches, bson.M{"native_payment": bson.M{"$ne": "0"}}, bson.D{{Key: "created_at", Value: 1}}, mock.Anything).
		Run(func(_ string, _ interface{}, _ interface{}, result interface{}) {
			launches := result.(*[]models.Launch)
			*launches = append(*launches,
				models.Launch{NativePayment: "5000000000000000000"},
				models.Launch{NativePayment: "250"},
			)
		}).Return(nil).Once()

	total, err := store.SumNativePayments(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "5000000000000000250", total.String())
}

func TestMongoStore_MarkRewardClaimed(t *testing.T) {
	now := time.Now()
	key := LaunchKey{User: aliceAddress, MissionID: 1, Index: 2}
	filter := bson.M{"user": aliceAddress.Hex(), "mission_id": uint64(1), "index": uint64(2), "reward_claimed": false}
	update := bson.M{"$set": bson.M{"reward_claimed": true, "updated_at": now}}

	t.Run("Updated", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().UpdateOne(models.CollectionLaunches, filter, update).Return(int64(1), nil).Once()

		assert.NoError(t, store.MarkRewardClaimed(context.Background(), key, now))
	})

	t.Run("Already Claimed", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoStore(mockDB)

		mockDB.EXPECT().UpdateOne(models.CollectionLaunches, filter, update).Return(int64(0), nil).Once()

		assert.ErrorIs(t, store.MarkRewardClaimed(context.Background(), key, now), ErrConflict)
	})
}

func TestMongoStore_RecordMinted(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	store := NewMongoStore(mockDB)
	now := time.Now()
	key := LaunchKey{User: aliceAddress, MissionID: 1, Index: 0}

	mockDB.EXPECT().UpdateOne(
		models.CollectionLaunches,
		bson.M{"user": aliceAddress.Hex(), "mission_id": uint64(1), "index": uint64(0), "tokens_minted": false},
		bson.M{"$set": bson.M{"minted_count": uint64(2), "tokens_minted": false, "updated_at": now}},
	).Return(int64(1), nil).Once()

	assert.NoError(t, store.RecordMinted(context.Background(), key, 2, false, now))
}

func TestMongoStore_WithLedger(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	admins, _ := NewAdminList([]string{adminAddress.Hex()})
	l := New(NewMongoStore(mockDB), admins, newFakeToken(custodyAddress), custodyAddress, WithEventSink(&eventRecorder{}))

	mockDB.EXPECT().CountDocuments(models.CollectionMissions, bson.M{}).Return(int64(0), nil).Once()
	mockDB.EXPECT().InsertOne(models.CollectionMissions, mock.Anything).
		Run(func(_ string, data interface{}) {
			mission := data.(*models.Mission)
			assert.Equal(t, uint64(0), mission.MissionID)
			assert.Equal(t, []string{"5000000000000000000", "10000000000000000000", "50000000000000000000", "250000000000000000000"}, mission.BoostThresholds)
			assert.Equal(t, "1000", mission.CostPerShip)
			assert.True(t, mission.Enabled)
		}).Return(nil).Once()

	id, err := l.AddMission(context.Background(), adminAddress, defaultMission())
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), id)
}
