package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan13ram/spaceship-staking/app/mocks"
)

func TestKeyedLocker(t *testing.T) {
	t.Run("Exclusive Per Resource", func(t *testing.T) {
		locker := NewKeyedLocker()

		var mu sync.Mutex
		active, maxActive := 0, 0
		wg := sync.WaitGroup{}
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, unlock, err := locker.Lock(context.Background(), "missions/0")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxActive)
		assert.Empty(t, locker.entries)
	})

	t.Run("Independent Resources", func(t *testing.T) {
		locker := NewKeyedLocker()

		_, unlockA, err := locker.Lock(context.Background(), "missions/0")
		require.NoError(t, err)
		_, unlockB, err := locker.Lock(context.Background(), "missions/1")
		require.NoError(t, err)

		unlockA()
		unlockB()
		// unlocking twice is harmless
		unlockA()
		assert.Empty(t, locker.entries)
	})

	t.Run("Context Cancelled While Waiting", func(t *testing.T) {
		locker := NewKeyedLocker()

		_, unlock, err := locker.Lock(context.Background(), "missions/0")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, _, err = locker.Lock(ctx, "missions/0")
		assert.ErrorIs(t, err, ErrBusy)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		unlock()
		assert.Empty(t, locker.entries)
	})

	t.Run("Lock Context Ends On Unlock", func(t *testing.T) {
		locker := NewKeyedLocker()

		lockCtx, unlock, err := locker.Lock(context.Background(), "missions/0")
		require.NoError(t, err)
		assert.NoError(t, lockCtx.Err())

		unlock()
		assert.ErrorIs(t, lockCtx.Err(), context.Canceled)
	})
}

func TestDatabaseLocker(t *testing.T) {
	t.Run("Lock And Unlock", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		locker := NewDatabaseLocker(mockDB, time.Minute)

		mockDB.EXPECT().XLock("missions/0").Return("lock-id", nil).Once()
		mockDB.EXPECT().Unlock("lock-id").Return(nil).Once()

		lockCtx, unlock, err := locker.Lock(context.Background(), "missions/0")
		require.NoError(t, err)
		assert.NoError(t, lockCtx.Err())

		unlock()
		unlock()
		assert.ErrorIs(t, lockCtx.Err(), context.Canceled)
	})

	t.Run("Lock Held Elsewhere", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		locker := NewDatabaseLocker(mockDB, time.Minute)

		mockDB.EXPECT().XLock("missions/0").Return("", errors.New("resource is locked")).Once()

		_, _, err := locker.Lock(context.Background(), "missions/0")
		assert.ErrorIs(t, err, ErrBusy)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		locker := NewDatabaseLocker(mockDB, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := locker.Lock(ctx, "missions/0")
		assert.ErrorIs(t, err, ErrBusy)
	})

	t.Run("Renews While Held", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		clock := clockwork.NewFakeClock()
		locker := NewDatabaseLocker(mockDB, 30*time.Second)
		locker.clock = clock

		renewed := make(chan struct{}, 2)
		mockDB.EXPECT().XLock("missions/0").Return("lock-id", nil).Once()
		mockDB.EXPECT().Renew("lock-id").RunAndReturn(func(string) error {
			renewed <- struct{}{}
			return nil
		}).Twice()
		mockDB.EXPECT().Unlock("lock-id").Return(nil).Once()

		lockCtx, unlock, err := locker.Lock(context.Background(), "missions/0")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for i := 0; i < 2; i++ {
			require.NoError(t, clock.BlockUntilContext(ctx, 1))
			clock.Advance(10 * time.Second)
			select {
			case <-renewed:
			case <-ctx.Done():
				t.Fatal("lock was not renewed")
			}
		}
		assert.NoError(t, lockCtx.Err())

		unlock()
		assert.ErrorIs(t, lockCtx.Err(), context.Canceled)
	})

	t.Run("Lost Lock Cancels Holder", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		clock := clockwork.NewFakeClock()
		locker := NewDatabaseLocker(mockDB, 30*time.Second)
		locker.clock = clock

		mockDB.EXPECT().XLock("missions/0").Return("lock-id", nil).Once()
		mockDB.EXPECT().Renew("lock-id").Return(errors.New("lock not found")).Once()
		mockDB.EXPECT().Unlock("lock-id").Return(errors.New("lock not found")).Once()

		lockCtx, unlock, err := locker.Lock(context.Background(), "missions/0")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(10 * time.Second)

		select {
		case <-lockCtx.Done():
		case <-ctx.Done():
			t.Fatal("lock context was not cancelled")
		}
		assert.ErrorIs(t, context.Cause(lockCtx), ErrBusy)

		unlock()
		assert.ErrorIs(t, context.Cause(lockCtx), ErrBusy)
	})

	t.Run("Ledger Reports Busy", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		tl := newTestLedger(t)
		l := New(tl.store, tl.auth, tl.token, custodyAddress, WithClock(tl.clock), WithLocker(NewDatabaseLocker(mockDB, time.Minute)))

		mockDB.EXPECT().XLock(missionSequenceResource).Return("", errors.New("resource is locked")).Once()

		_, err := l.AddMission(context.Background(), adminAddress, defaultMission())
		assert.Equal(t, CodeBusy, CodeOf(err))
	})

	t.Run("Lost Lock Aborts Payout", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		clock := clockwork.NewFakeClock()
		locker := NewDatabaseLocker(mockDB, 30*time.Second)
		locker.clock = clock

		tl := newTestLedger(t)
		tl.token.mint(aliceAddress, 100000)
		tl.token.mint(custodyAddress, 100000)
		id := tl.openMission(t)
		_, err := tl.StartMission(context.Background(), aliceAddress, id, 1, NativePayment{})
		require.NoError(t, err)
		tl.toClaimWindow()

		l := New(tl.store, tl.auth, tl.token, custodyAddress, WithClock(tl.clock), WithLocker(locker))

		key := LaunchKey{User: aliceAddress, MissionID: id, Index: 0}
		mockDB.EXPECT().XLock(key.String()).Return("lock-id", nil).Once()
		mockDB.EXPECT().Renew("lock-id").Return(errors.New("lock not found")).Once()
		mockDB.EXPECT().Unlock("lock-id").Return(nil).Once()

		// the payout blocks until the lock is lost
		tl.token.transferHook = func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		go func() {
			if clock.BlockUntilContext(ctx, 1) == nil {
				clock.Advance(10 * time.Second)
			}
		}()

		_, err = l.ClaimReward(context.Background(), aliceAddress, id, 0)
		assert.Equal(t, CodeTransferFailed, CodeOf(err))

		launch, err := tl.store.FindLaunch(context.Background(), key)
		require.NoError(t, err)
		assert.False(t, launch.RewardClaimed)
	})
}

func TestLaunchKeyString(t *testing.T) {
	key := LaunchKey{User: aliceAddress, MissionID: 3, Index: 1}
	assert.Equal(t, "launches/0x70997970C51812dc3A010C7d01b50e0d17dc79C8/3/1", key.String())
	assert.Equal(t, "missions/3", missionResource(3))
	assert.Equal(t, "launches/0x70997970C51812dc3A010C7d01b50e0d17dc79C8/3", launchSequenceResource(aliceAddress, 3))
}
