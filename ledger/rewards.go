package ledger

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/models"
)

// settlementCommitTimeout bounds the retries of recording a reward that was already paid out.
var settlementCommitTimeout = 10 * time.Second

// Settlement is the payout of one launch: the refunded stake plus the boosted reward.
type Settlement struct {
	Stake      *big.Int `json:"stake"`
	Reward     *big.Int `json:"reward"`
	Payout     *big.Int `json:"payout"`
	Multiplier uint8    `json:"multiplier"`
}

// ComputeReward returns shipCount * rewardPerShip * multiplier.
func ComputeReward(shipCount uint64, rewardPerShip *big.Int, multiplier uint8) *big.Int {
	reward := new(big.Int).SetUint64(shipCount)
	reward.Mul(reward, rewardPerShip)
	return reward.Mul(reward, big.NewInt(int64(multiplier)))
}

func (l *Ledger) findCallerLaunch(ctx context.Context, key LaunchKey) (*models.Launch, error) {
	launch, err := l.store.FindLaunch(ctx, key)
	if errors.Is(err, ErrNoDocument) {
		return nil, withMetadata(ErrNotFound, map[string]string{
			"mission_id": formatUint(key.MissionID),
			"index":      formatUint(key.Index),
		})
	}
	if err != nil {
		return nil, storageError(err)
	}
	return launch, nil
}

// ClaimReward pays the caller's launch its stake plus reward, exactly once.
func (l *Ledger) ClaimReward(ctx context.Context, caller common.Address, missionID uint64, index uint64) (*Settlement, error) {
	now := l.clock.Now()
	key := LaunchKey{User: caller, MissionID: missionID, Index: index}

	ctx, unlock, err := l.lock(ctx, key.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	launch, err := l.findCallerLaunch(ctx, key)
	if err != nil {
		return nil, err
	}
	mission, err := l.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if now.Before(mission.ClaimOpensAt()) {
		return nil, ErrClaimWindowNotOpen
	}
	if launch.RewardClaimed {
		return nil, ErrAlreadyClaimed
	}

	rewardPerShip, err := parseStoredAmount("reward per ship", mission.RewardPerShip)
	if err != nil {
		return nil, err
	}
	stake, err := parseStoredAmount("stake", launch.Stake)
	if err != nil {
		return nil, err
	}

	reward := ComputeReward(launch.ShipCount, rewardPerShip, launch.Multiplier)
	settlement := &Settlement{
		Stake:      stake,
		Reward:     reward,
		Payout:     new(big.Int).Add(stake, reward),
		Multiplier: launch.Multiplier,
	}

	logger := log.WithFields(log.Fields{
		"mission_id": missionID,
		"user":       caller.Hex(),
		"index":      index,
		"payout":     settlement.Payout.String(),
	})

	if settlement.Payout.Sign() > 0 {
		balance, err := l.token.BalanceOf(ctx, l.custody)
		if err != nil {
			return nil, wrapError(CodeTransferFailed, "could not read reward pool balance", err)
		}
		if balance.Cmp(settlement.Payout) < 0 {
			logger.WithField("balance", balance.String()).Warn("[LEDGER] Reward pool cannot cover payout")
			return nil, ErrInsufficientRewardPool
		}

		if err := l.token.Transfer(ctx, caller, settlement.Payout); err != nil {
			logger.WithError(err).Warn("[LEDGER] Payout transfer failed")
			return nil, wrapError(CodeTransferFailed, "payout transfer failed", err)
		}
	}

	if err := l.commitSettlement(ctx, key, now); err != nil {
		logger.WithError(err).Error("[LEDGER] Payout sent but settlement not recorded, reconcile manually")
		return nil, wrapError(CodeStorage, "payout sent but settlement not recorded", err)
	}

	logger.Info("[LEDGER] Reward claimed")

	l.emit(ctx, models.Event{
		Name:      models.EventRewardClaimed,
		MissionID: missionID,
		User:      caller.Hex(),
		CreatedAt: now,
	})

	return settlement, nil
}

// commitSettlement marks the launch settled, retrying transient store failures
// since the payout has already left custody.
func (l *Ledger) commitSettlement(ctx context.Context, key LaunchKey, now time.Time) error {
	commitCtx := context.WithoutCancel(ctx)
	_, err := backoff.Retry(commitCtx, func() (struct{}, error) {
		err := l.store.MarkRewardClaimed(commitCtx, key, now)
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrNoDocument) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(settlementCommitTimeout))
	return err
}
