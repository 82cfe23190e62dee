package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dan13ram/spaceship-staking/models"
)

var (
	ErrNoDocument         = errors.New("document not found")
	ErrDuplicateReference = errors.New("payment reference already used")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrConflict           = errors.New("document was modified concurrently")
)

// LaunchKey addresses one launch: the index is scoped to the (user, mission) pair.
type LaunchKey struct {
	User      common.Address
	MissionID uint64
	Index     uint64
}

func (k LaunchKey) String() string {
	return fmt.Sprintf("launches/%s/%d/%d", k.User.Hex(), k.MissionID, k.Index)
}

// Store persists missions and launches. Implementations do not enforce business
// rules; the Ledger serializes writers with a Locker before calling them.
type Store interface {
	CountMissions(ctx context.Context) (uint64, error)
	InsertMission(ctx context.Context, mission *models.Mission) error
	FindMission(ctx context.Context, missionID uint64) (*models.Mission, error)
	ListMissions(ctx context.Context) ([]models.Mission, error)
	SetMissionEnabled(ctx context.Context, missionID uint64, enabled bool, now time.Time) error

	// CreateLaunch records the launch and its launcher; firstLaunch is true the
	// first time the user launches against any mission.
	CreateLaunch(ctx context.Context, launch *models.Launch) (firstLaunch bool, err error)
	FindLaunch(ctx context.Context, key LaunchKey) (*models.Launch, error)
	CountLaunches(ctx context.Context, user common.Address, missionID uint64) (uint64, error)
	CountMissionLaunches(ctx context.Context, missionID uint64) (uint64, error)
	ListLaunchesOfUser(ctx context.Context, user common.Address) ([]models.Launch, error)
	PaymentReferenceUsed(ctx context.Context, reference string) (bool, error)
	SumNativePayments(ctx context.Context) (*big.Int, error)
	CountLaunchers(ctx context.Context) (uint64, error)

	// MarkRewardClaimed fails with ErrConflict if the reward was already marked.
	MarkRewardClaimed(ctx context.Context, key LaunchKey, now time.Time) error
	// RecordMinted fails with ErrConflict if the tokens were already marked minted.
	RecordMinted(ctx context.Context, key LaunchKey, mintedCount uint64, tokensMinted bool, now time.Time) error
}
