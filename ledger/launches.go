package ledger

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/models"
)

// NativePayment is the native currency a caller attached to a launch. Reference
// identifies the settled payment (a transaction hash) and may back only one launch.
type NativePayment struct {
	Amount    *big.Int
	Reference string
}

func (p NativePayment) amount() *big.Int {
	if p.Amount == nil {
		return new(big.Int)
	}
	return p.Amount
}

// StartMission escrows costPerShip * shipCount from the caller and records a new
// launch. The returned id is the launch index scoped to (caller, missionID).
func (l *Ledger) StartMission(ctx context.Context, caller common.Address, missionID uint64, shipCount uint64, payment NativePayment) (uint64, error) {
	now := l.clock.Now()

	ctx, unlock, err := l.lock(ctx, launchSequenceResource(caller, missionID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	mission, err := l.findMission(ctx, missionID)
	if err != nil {
		return 0, err
	}
	if !mission.Enabled {
		return 0, ErrMissionInactive
	}
	if now.Before(mission.StartTime) {
		return 0, ErrMissionNotStarted
	}
	if !now.Before(mission.LaunchDeadline) {
		return 0, ErrMissionClosed
	}
	if shipCount < 1 {
		return 0, ErrInvalidShipCount
	}

	nativeAmount := payment.amount()
	if nativeAmount.Sign() < 0 {
		return 0, ErrInvalidAmount
	}
	reference := strings.ToLower(strings.TrimSpace(payment.Reference))
	if reference != "" {
		used, err := l.store.PaymentReferenceUsed(ctx, reference)
		if err != nil {
			return 0, storageError(err)
		}
		if used {
			return 0, ErrDuplicatePayment
		}
	}

	costPerShip, err := parseStoredAmount("cost per ship", mission.CostPerShip)
	if err != nil {
		return 0, err
	}
	thresholds, err := commonutil.ParseAmounts(mission.BoostThresholds)
	if err != nil {
		return 0, wrapError(CodeStorage, "corrupt boost thresholds", err)
	}
	multiplier := ResolveTier(nativeAmount, thresholds)

	index, err := l.store.CountLaunches(ctx, caller, missionID)
	if err != nil {
		return 0, storageError(err)
	}

	stake := new(big.Int).Mul(costPerShip, new(big.Int).SetUint64(shipCount))

	logger := log.WithFields(log.Fields{
		"mission_id": missionID,
		"user":       caller.Hex(),
		"index":      index,
	})

	if stake.Sign() > 0 {
		if err := l.token.TransferFrom(ctx, caller, l.custody, stake); err != nil {
			logger.WithError(err).Warn("[LEDGER] Stake transfer failed")
			return 0, wrapError(CodeTransferFailed, "stake transfer failed", err)
		}
	}

	launch := &models.Launch{
		User:          caller.Hex(),
		MissionID:     missionID,
		Index:         index,
		ShipCount:     shipCount,
		NativePayment: nativeAmount.String(),
		Multiplier:    multiplier,
		Stake:         stake.String(),
		RewardClaimed: false,
		TokensMinted:  false,
		MintedCount:   0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if reference != "" {
		launch.PaymentReference = &reference
	}

	if _, err := l.store.CreateLaunch(ctx, launch); err != nil {
		l.refundStake(context.WithoutCancel(ctx), logger, caller, stake)
		if errors.Is(err, ErrDuplicateReference) {
			return 0, ErrDuplicatePayment
		}
		return 0, storageError(err)
	}

	logger.WithFields(log.Fields{
		"ships":      shipCount,
		"stake":      stake.String(),
		"multiplier": multiplier,
	}).Info("[LEDGER] Mission started")

	l.emit(ctx, models.Event{
		Name:      models.EventMissionStarted,
		MissionID: missionID,
		User:      caller.Hex(),
		CreatedAt: now,
	})

	return index, nil
}

// refundStake returns a pulled stake when the launch could not be recorded.
func (l *Ledger) refundStake(ctx context.Context, logger *log.Entry, caller common.Address, stake *big.Int) {
	if stake.Sign() == 0 {
		return
	}
	if err := l.token.Transfer(ctx, caller, stake); err != nil {
		logger.WithError(err).WithField("stake", stake.String()).Error("[LEDGER] Error refunding stake of unrecorded launch")
		return
	}
	logger.WithField("stake", stake.String()).Warn("[LEDGER] Refunded stake of unrecorded launch")
}

// GetUsersLaunchedMission counts distinct users with at least one launch on any mission.
func (l *Ledger) GetUsersLaunchedMission(ctx context.Context) (uint64, error) {
	count, err := l.store.CountLaunchers(ctx)
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

func (l *Ledger) GetLaunchedMissionPerMissionIdsCountForUser(ctx context.Context, user common.Address, missionID uint64) (uint64, error) {
	count, err := l.store.CountLaunches(ctx, user, missionID)
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

// GetLaunchedMissionOfUser returns the launch at index under (user, missionID).
func (l *Ledger) GetLaunchedMissionOfUser(ctx context.Context, user common.Address, missionID uint64, index uint64) (*models.Launch, error) {
	if _, err := l.findMission(ctx, missionID); err != nil {
		return nil, err
	}
	launch, err := l.store.FindLaunch(ctx, LaunchKey{User: user, MissionID: missionID, Index: index})
	if errors.Is(err, ErrNoDocument) {
		return nil, ErrIndexOutOfRange
	}
	if err != nil {
		return nil, storageError(err)
	}
	return launch, nil
}

func (l *Ledger) GetMissionLaunchCount(ctx context.Context, missionID uint64) (uint64, error) {
	if _, err := l.findMission(ctx, missionID); err != nil {
		return 0, err
	}
	count, err := l.store.CountMissionLaunches(ctx, missionID)
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

func (l *Ledger) GetLaunchesOfUser(ctx context.Context, user common.Address) ([]models.Launch, error) {
	launches, err := l.store.ListLaunchesOfUser(ctx, user)
	if err != nil {
		return nil, storageError(err)
	}
	return launches, nil
}

// GetNativeBalance sums the native payments committed with launches.
func (l *Ledger) GetNativeBalance(ctx context.Context) (*big.Int, error) {
	total, err := l.store.SumNativePayments(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return total, nil
}
