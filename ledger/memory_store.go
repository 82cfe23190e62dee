package ledger

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/models"
)

type userMission struct {
	user      common.Address
	missionID uint64
}

// MemoryStore keeps all ledger state in process. It backs tests and single instance deployments.
type MemoryStore struct {
	mu sync.RWMutex

	missions      []models.Mission
	launches      []models.Launch
	byKey         map[LaunchKey]int
	byUser        map[common.Address][]int
	byUserMission map[userMission]uint64
	byMission     map[uint64]uint64
	references    map[string]struct{}
	launchers     map[common.Address]time.Time
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byKey:         make(map[LaunchKey]int),
		byUser:        make(map[common.Address][]int),
		byUserMission: make(map[userMission]uint64),
		byMission:     make(map[uint64]uint64),
		references:    make(map[string]struct{}),
		launchers:     make(map[common.Address]time.Time),
	}
}

func copyMission(mission models.Mission) *models.Mission {
	mission.BoostThresholds = append([]string(nil), mission.BoostThresholds...)
	return &mission
}

func copyLaunch(launch models.Launch) *models.Launch {
	if launch.PaymentReference != nil {
		reference := *launch.PaymentReference
		launch.PaymentReference = &reference
	}
	return &launch
}

func (s *MemoryStore) CountMissions(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.missions)), nil
}

func (s *MemoryStore) InsertMission(ctx context.Context, mission *models.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mission.MissionID != uint64(len(s.missions)) {
		return ErrDuplicateKey
	}
	s.missions = append(s.missions, *copyMission(*mission))
	return nil
}

func (s *MemoryStore) FindMission(ctx context.Context, missionID uint64) (*models.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if missionID >= uint64(len(s.missions)) {
		return nil, ErrNoDocument
	}
	return copyMission(s.missions[missionID]), nil
}

func (s *MemoryStore) ListMissions(ctx context.Context) ([]models.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	missions := make([]models.Mission, len(s.missions))
	for i, mission := range s.missions {
		missions[i] = *copyMission(mission)
	}
	return missions, nil
}

func (s *MemoryStore) SetMissionEnabled(ctx context.Context, missionID uint64, enabled bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if missionID >= uint64(len(s.missions)) {
		return ErrNoDocument
	}
	s.missions[missionID].Enabled = enabled
	s.missions[missionID].UpdatedAt = now
	return nil
}

func (s *MemoryStore) CreateLaunch(ctx context.Context, launch *models.Launch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := common.HexToAddress(launch.User)
	key := LaunchKey{User: user, MissionID: launch.MissionID, Index: launch.Index}
	if _, ok := s.byKey[key]; ok {
		return false, ErrDuplicateKey
	}
	if launch.PaymentReference != nil {
		if _, ok := s.references[*launch.PaymentReference]; ok {
			return false, ErrDuplicateReference
		}
		s.references[*launch.PaymentReference] = struct{}{}
	}

	position := len(s.launches)
	s.launches = append(s.launches, *copyLaunch(*launch))
	s.byKey[key] = position
	s.byUser[user] = append(s.byUser[user], position)
	s.byUserMission[userMission{user: user, missionID: launch.MissionID}]++
	s.byMission[launch.MissionID]++

	_, launched := s.launchers[user]
	if !launched {
		s.launchers[user] = launch.CreatedAt
	}
	return !launched, nil
}

func (s *MemoryStore) FindLaunch(ctx context.Context, key LaunchKey) (*models.Launch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	position, ok := s.byKey[key]
	if !ok {
		return nil, ErrNoDocument
	}
	return copyLaunch(s.launches[position]), nil
}

func (s *MemoryStore) CountLaunches(ctx context.Context, user common.Address, missionID uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUserMission[userMission{user: user, missionID: missionID}], nil
}

func (s *MemoryStore) CountMissionLaunches(ctx context.Context, missionID uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byMission[missionID], nil
}

func (s *MemoryStore) ListLaunchesOfUser(ctx context.Context, user common.Address) ([]models.Launch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := s.byUser[user]
	launches := make([]models.Launch, len(positions))
	for i, position := range positions {
		launches[i] = *copyLaunch(s.launches[position])
	}
	return launches, nil
}

func (s *MemoryStore) PaymentReferenceUsed(ctx context.Context, reference string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.references[reference]
	return ok, nil
}

func (s *MemoryStore) SumNativePayments(ctx context.Context) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := new(big.Int)
	for _, launch := range s.launches {
		amount, err := commonutil.ParseAmount(launch.NativePayment)
		if err != nil {
			return nil, err
		}
		total.Add(total, amount)
	}
	return total, nil
}

func (s *MemoryStore) CountLaunchers(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.launchers)), nil
}

func (s *MemoryStore) MarkRewardClaimed(ctx context.Context, key LaunchKey, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, ok := s.byKey[key]
	if !ok {
		return ErrNoDocument
	}
	launch := &s.launches[position]
	if launch.RewardClaimed {
		return ErrConflict
	}
	launch.RewardClaimed = true
	launch.UpdatedAt = now
	return nil
}

func (s *MemoryStore) RecordMinted(ctx context.Context, key LaunchKey, mintedCount uint64, tokensMinted bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, ok := s.byKey[key]
	if !ok {
		return ErrNoDocument
	}
	launch := &s.launches[position]
	if launch.TokensMinted {
		return ErrConflict
	}
	launch.MintedCount = mintedCount
	launch.TokensMinted = tokensMinted
	launch.UpdatedAt = now
	return nil
}
