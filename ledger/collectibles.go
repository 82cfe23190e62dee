package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

// CollectibleAllowance is the number of collectibles a launch of shipCount ships may mint.
func (l *Ledger) CollectibleAllowance(shipCount uint64) uint64 {
	if shipCount < l.maxCollectiblesPerLaunch {
		return shipCount
	}
	return l.maxCollectiblesPerLaunch
}

// ClaimToken mints the collectibles of a settled launch to the caller and returns the minted token ids.
// A claim interrupted by a failing mint keeps the count minted so far and a retry mints only the rest.
func (l *Ledger) ClaimToken(ctx context.Context, caller common.Address, missionID uint64, index uint64) ([]*big.Int, error) {
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
	if !launch.RewardClaimed {
		return nil, ErrRewardNotYetClaimed
	}
	if launch.TokensMinted {
		return nil, ErrAlreadyMinted
	}

	if l.minter == nil {
		return nil, ErrMintUnauthorized
	}
	allowed, err := l.minter.IsMinter(ctx, l.custody)
	if err != nil {
		return nil, wrapError(CodeMintFailed, "could not read minter role", err)
	}
	if !allowed {
		return nil, ErrMintUnauthorized
	}

	logger := log.WithFields(log.Fields{
		"mission_id": missionID,
		"user":       caller.Hex(),
		"index":      index,
	})

	allowance := l.CollectibleAllowance(launch.ShipCount)
	minted := launch.MintedCount
	tokenIds := []*big.Int{}

	for minted < allowance {
		tokenId, err := l.minter.Mint(ctx, caller)
		if err != nil {
			logger.WithError(err).WithField("minted", minted).Warn("[LEDGER] Collectible mint failed")
			if minted > launch.MintedCount {
				if recordErr := l.store.RecordMinted(ctx, key, minted, false, now); recordErr != nil {
					logger.WithError(recordErr).WithField("minted", minted).Error("[LEDGER] Error recording partial mint, reconcile manually")
				}
			}
			// the revert reason is opaque, so a revoked minter role is read back from the contract
			if allowed, roleErr := l.minter.IsMinter(context.WithoutCancel(ctx), l.custody); roleErr == nil && !allowed {
				return tokenIds, wrapError(CodeMintUnauthorized, "collectible mint not authorized", err)
			}
			return tokenIds, wrapError(CodeMintFailed, "collectible mint failed", err)
		}
		tokenIds = append(tokenIds, tokenId)
		minted++
	}

	if err := l.store.RecordMinted(ctx, key, minted, true, now); err != nil {
		logger.WithError(err).WithField("minted", minted).Error("[LEDGER] Collectibles minted but not recorded, reconcile manually")
		return tokenIds, storageError(err)
	}

	logger.WithField("minted", minted).Info("[LEDGER] Collectibles claimed")

	return tokenIds, nil
}
