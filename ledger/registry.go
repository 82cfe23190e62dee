package ledger

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/models"
)

// MissionParams describes a new mission. Everything but the enabled flag is immutable once added.
type MissionParams struct {
	StartTime       time.Time
	LaunchDeadline  time.Time
	ClaimDelay      time.Duration
	RewardPerShip   *big.Int
	CostPerShip     *big.Int
	BoostThresholds []*big.Int
	Title           string
	Description     string
	ResourceURI     string
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() >= 0
}

func (p MissionParams) validate() error {
	if err := ValidateBoostThresholds(p.BoostThresholds); err != nil {
		return err
	}
	if !p.StartTime.Before(p.LaunchDeadline) || p.ClaimDelay < 0 {
		return ErrInvalidMissionWindow
	}
	if !validAmount(p.RewardPerShip) || !validAmount(p.CostPerShip) {
		return ErrInvalidAmount
	}
	return nil
}

// AddMission registers a mission under the next sequential id and returns that id.
func (l *Ledger) AddMission(ctx context.Context, caller common.Address, params MissionParams) (uint64, error) {
	now := l.clock.Now()

	if !l.auth.IsAdmin(caller) {
		return 0, ErrUnauthorized
	}
	if err := params.validate(); err != nil {
		return 0, err
	}

	ctx, unlock, err := l.lock(ctx, missionSequenceResource)
	if err != nil {
		return 0, err
	}
	defer unlock()

	missionID, err := l.store.CountMissions(ctx)
	if err != nil {
		return 0, storageError(err)
	}

	mission := &models.Mission{
		MissionID:       missionID,
		StartTime:       params.StartTime,
		LaunchDeadline:  params.LaunchDeadline,
		ClaimDelay:      params.ClaimDelay,
		RewardPerShip:   params.RewardPerShip.String(),
		CostPerShip:     params.CostPerShip.String(),
		BoostThresholds: commonutil.FormatAmounts(params.BoostThresholds),
		Enabled:         true,
		Metadata: models.MissionMetadata{
			Title:       params.Title,
			Description: params.Description,
			ResourceURI: params.ResourceURI,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := l.store.InsertMission(ctx, mission); err != nil {
		return 0, storageError(err)
	}

	log.WithFields(log.Fields{"mission_id": missionID, "admin": caller.Hex()}).Info("[LEDGER] Mission added")

	l.emit(ctx, models.Event{
		Name:      models.EventMissionAdded,
		MissionID: missionID,
		CreatedAt: now,
	})

	return missionID, nil
}

// DisableMission blocks new launches on a mission. Disabling twice is a no-op.
func (l *Ledger) DisableMission(ctx context.Context, caller common.Address, missionID uint64) error {
	now := l.clock.Now()

	if !l.auth.IsAdmin(caller) {
		return ErrUnauthorized
	}

	ctx, unlock, err := l.lock(ctx, missionResource(missionID))
	if err != nil {
		return err
	}
	defer unlock()

	mission, err := l.findMission(ctx, missionID)
	if err != nil {
		return err
	}
	if !mission.Enabled {
		return nil
	}

	if err := l.store.SetMissionEnabled(ctx, missionID, false, now); err != nil {
		return storageError(err)
	}

	log.WithFields(log.Fields{"mission_id": missionID, "admin": caller.Hex()}).Info("[LEDGER] Mission disabled")
	return nil
}

func (l *Ledger) findMission(ctx context.Context, missionID uint64) (*models.Mission, error) {
	mission, err := l.store.FindMission(ctx, missionID)
	if errors.Is(err, ErrNoDocument) {
		return nil, missionNotFound(missionID)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return mission, nil
}

func (l *Ledger) GetMissionCount(ctx context.Context) (uint64, error) {
	count, err := l.store.CountMissions(ctx)
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

func (l *Ledger) GetMission(ctx context.Context, missionID uint64) (*models.Mission, error) {
	return l.findMission(ctx, missionID)
}

func (l *Ledger) GetMissions(ctx context.Context) ([]models.Mission, error) {
	missions, err := l.store.ListMissions(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return missions, nil
}
