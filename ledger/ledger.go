package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/models"
)

// Authorizer decides whether a caller may manage missions.
type Authorizer interface {
	IsAdmin(caller common.Address) bool
}

// TokenTransferer moves the staking token. TransferFrom pulls from a payer
// into custody; Transfer pushes out of custody.
type TokenTransferer interface {
	TransferFrom(ctx context.Context, from common.Address, to common.Address, amount *big.Int) error
	Transfer(ctx context.Context, to common.Address, amount *big.Int) error
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// CollectibleMinter mints one collectible per call.
type CollectibleMinter interface {
	IsMinter(ctx context.Context, account common.Address) (bool, error)
	Mint(ctx context.Context, recipient common.Address) (*big.Int, error)
}

// AdminList authorizes a fixed set of addresses.
type AdminList struct {
	admins map[common.Address]struct{}
}

func NewAdminList(addresses []string) (*AdminList, error) {
	admins := make(map[common.Address]struct{}, len(addresses))
	for _, address := range addresses {
		address = strings.TrimSpace(address)
		if !commonutil.IsValidEthereumAddress(address) {
			return nil, fmt.Errorf("invalid admin address: %q", address)
		}
		admins[common.HexToAddress(address)] = struct{}{}
	}
	return &AdminList{admins: admins}, nil
}

func (a *AdminList) IsAdmin(caller common.Address) bool {
	_, ok := a.admins[caller]
	return ok
}

type Ledger struct {
	store   Store
	locker  Locker
	auth    Authorizer
	token   TokenTransferer
	minter  CollectibleMinter
	events  EventSink
	clock   clockwork.Clock
	custody common.Address

	maxCollectiblesPerLaunch uint64
}

type Option func(*Ledger)

func WithClock(clock clockwork.Clock) Option {
	return func(l *Ledger) { l.clock = clock }
}

func WithEventSink(events EventSink) Option {
	return func(l *Ledger) { l.events = events }
}

func WithLocker(locker Locker) Option {
	return func(l *Ledger) { l.locker = locker }
}

// WithCollectibleMinter enables claimToken. Without a minter every claim fails with MintUnauthorized.
func WithCollectibleMinter(minter CollectibleMinter) Option {
	return func(l *Ledger) { l.minter = minter }
}

func WithMaxCollectiblesPerLaunch(max uint64) Option {
	return func(l *Ledger) { l.maxCollectiblesPerLaunch = max }
}

// New creates a ledger escrowing stakes in the custody account.
func New(store Store, auth Authorizer, token TokenTransferer, custody common.Address, opts ...Option) *Ledger {
	l := &Ledger{
		store:                    store,
		locker:                   NewKeyedLocker(),
		auth:                     auth,
		token:                    token,
		events:                   LogEventSink{},
		clock:                    clockwork.NewRealClock(),
		custody:                  custody,
		maxCollectiblesPerLaunch: commonutil.DefaultMaxCollectiblesPerLaunch,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Custody() common.Address {
	return l.custody
}

func (l *Ledger) MaxCollectiblesPerLaunch() uint64 {
	return l.maxCollectiblesPerLaunch
}

func (l *Ledger) lock(ctx context.Context, resource string) (context.Context, func(), error) {
	lockCtx, unlock, err := l.locker.Lock(ctx, resource)
	if err != nil {
		if CodeOf(err) == "" {
			err = wrapError(CodeBusy, "could not lock "+resource, err)
		}
		return nil, nil, err
	}
	return lockCtx, unlock, nil
}

// emit publishes an event of a committed operation; failures are only logged.
func (l *Ledger) emit(ctx context.Context, event models.Event) {
	if err := l.events.Emit(ctx, event); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event":      event.Name,
			"mission_id": event.MissionID,
			"user":       event.User,
		}).Error("[LEDGER] Error emitting event")
	}
}

func storageError(err error) error {
	return wrapError(CodeStorage, "storage failure", err)
}

func missionNotFound(missionID uint64) error {
	return withMetadata(ErrNotFound, map[string]string{"mission_id": formatUint(missionID)})
}

func formatUint(value uint64) string {
	return strconv.FormatUint(value, 10)
}

func parseStoredAmount(field string, value string) (*big.Int, error) {
	amount, err := commonutil.ParseAmount(value)
	if err != nil {
		return nil, wrapError(CodeStorage, "corrupt "+field, err)
	}
	return amount, nil
}
