package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/app"
)

// Locker grants exclusive access to a named resource until the returned unlock is called.
// The returned context is cancelled once the lock is released or lost, and is the
// context the holder uses for work that must run under the lock.
type Locker interface {
	Lock(ctx context.Context, resource string) (lockCtx context.Context, unlock func(), err error)
}

const missionSequenceResource = "missions/sequence"

func missionResource(missionID uint64) string {
	return "missions/" + formatUint(missionID)
}

// launchSequenceResource guards the launch index sequence of one (user, mission) pair.
func launchSequenceResource(user common.Address, missionID uint64) string {
	return "launches/" + user.Hex() + "/" + formatUint(missionID)
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedLocker is an in process Locker with one mutex per resource name.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

var _ Locker = &KeyedLocker{}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{entries: make(map[string]*keyedEntry)}
}

func (l *KeyedLocker) acquireEntry(resource string) *keyedEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[resource]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		l.entries[resource] = entry
	}
	entry.refs++
	return entry
}

func (l *KeyedLocker) releaseEntry(resource string, entry *keyedEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, resource)
	}
}

func (l *KeyedLocker) Lock(ctx context.Context, resource string) (context.Context, func(), error) {
	entry := l.acquireEntry(resource)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(resource, entry)
		return nil, nil, wrapError(CodeBusy, "could not lock "+resource, ctx.Err())
	}

	lockCtx, cancel := context.WithCancel(ctx)

	var once sync.Once
	return lockCtx, func() {
		once.Do(func() {
			cancel()
			<-entry.sem
			l.releaseEntry(resource, entry)
		})
	}, nil
}

// DatabaseLocker is a Locker backed by the mongo lock collection, shared by every instance.
// A held lock is renewed every third of its TTL so it outlives slow chain transactions.
type DatabaseLocker struct {
	db            app.Database
	clock         clockwork.Clock
	renewInterval time.Duration
}

var _ Locker = &DatabaseLocker{}

func NewDatabaseLocker(db app.Database, ttl time.Duration) *DatabaseLocker {
	return &DatabaseLocker{db: db, clock: clockwork.NewRealClock(), renewInterval: ttl / 3}
}

func (l *DatabaseLocker) Lock(ctx context.Context, resource string) (context.Context, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, wrapError(CodeBusy, "could not lock "+resource, err)
	}

	lockId, err := l.db.XLock(resource)
	if err != nil {
		return nil, nil, wrapError(CodeBusy, "could not lock "+resource, err)
	}

	lockCtx, cancel := context.WithCancelCause(ctx)
	released := make(chan struct{})
	renewed := make(chan struct{})
	go func() {
		defer close(renewed)
		l.keepAlive(resource, lockId, released, cancel)
	}()

	var once sync.Once
	return lockCtx, func() {
		once.Do(func() {
			close(released)
			<-renewed
			cancel(context.Canceled)
			if err := l.db.Unlock(lockId); err != nil {
				log.WithError(err).WithField("resource", resource).Error("[LEDGER] Error unlocking resource")
			}
		})
	}, nil
}

// keepAlive renews the lock until it is released. A failed renewal cancels the
// holder's context, since another instance may take the lock once its TTL runs out.
func (l *DatabaseLocker) keepAlive(resource string, lockId string, released <-chan struct{}, cancel context.CancelCauseFunc) {
	if l.renewInterval <= 0 {
		return
	}

	ticker := l.clock.NewTicker(l.renewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-released:
			return
		case <-ticker.Chan():
			if err := l.db.Renew(lockId); err != nil {
				log.WithError(err).WithField("resource", resource).Error("[LEDGER] Lost lock on resource")
				cancel(wrapError(CodeBusy, "lost lock on "+resource, err))
				return
			}
			log.WithField("resource", resource).Debug("[LEDGER] Renewed lock")
		}
	}
}
