package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/ledger"
)

func init() {
	log.SetOutput(io.Discard)
}

const (
	adminPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	alicePrivateKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	custodyAddress = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")

	testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

type fakeToken struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
}

func newFakeToken() *fakeToken {
	return &fakeToken{balances: make(map[common.Address]*big.Int)}
}

func (f *fakeToken) balance(account common.Address) *big.Int {
	if b, ok := f.balances[account]; ok {
		return b
	}
	b := new(big.Int)
	f.balances[account] = b
	return b
}

func (f *fakeToken) fund(account common.Address, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balance(account).Add(f.balance(account), big.NewInt(amount))
}

func (f *fakeToken) move(from common.Address, to common.Address, amount *big.Int) error {
	if f.balance(from).Cmp(amount) < 0 {
		return errors.New("ERC20: transfer amount exceeds balance")
	}
	f.balance(from).Sub(f.balance(from), amount)
	f.balance(to).Add(f.balance(to), amount)
	return nil
}

func (f *fakeToken) TransferFrom(ctx context.Context, from common.Address, to common.Address, amount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.move(from, to, amount)
}

func (f *fakeToken) Transfer(ctx context.Context, to common.Address, amount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.move(custodyAddress, to, amount)
}

func (f *fakeToken) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.balance(account)), nil
}

type fakeMinter struct {
	mu     sync.Mutex
	nextId int64
}

func (f *fakeMinter) IsMinter(ctx context.Context, account common.Address) (bool, error) {
	return account == custodyAddress, nil
}

func (f *fakeMinter) Mint(ctx context.Context, recipient common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextId
	f.nextId++
	return big.NewInt(id), nil
}

type fakePayments struct {
	amounts map[string]*big.Int
}

func (f *fakePayments) Verify(txHash string, sender common.Address) (*big.Int, error) {
	amount, ok := f.amounts[txHash]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	return amount, nil
}

type testServer struct {
	app   *fiber.App
	token *fakeToken
	clock *clockwork.FakeClock
	admin commonutil.Signer
	alice commonutil.Signer
	posts int64
}

func newTestServer(t *testing.T, payments PaymentVerifier) *testServer {
	admin, err := commonutil.NewPrivateKeySigner(adminPrivateKey)
	require.NoError(t, err)
	alice, err := commonutil.NewPrivateKeySigner(alicePrivateKey)
	require.NoError(t, err)

	admins, err := ledger.NewAdminList([]string{admin.EthAddress().Hex()})
	require.NoError(t, err)

	token := newFakeToken()
	clock := clockwork.NewFakeClockAt(testEpoch)
	l := ledger.New(ledger.NewMemoryStore(), admins, token, custodyAddress,
		ledger.WithClock(clock),
		ledger.WithCollectibleMinter(&fakeMinter{}),
	)

	return &testServer{
		app:   NewApp(l, payments, clock, time.Minute, NewMemoryNonceStore(clock)),
		token: token,
		clock: clock,
		admin: admin,
		alice: alice,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) get(t *testing.T, path string) *http.Response {
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) signedRequest(t *testing.T, signer commonutil.Signer, path string, body interface{}, timestamp int64) *http.Request {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	signature, err := SignRequest(signer, http.MethodPost, path, timestamp, payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(HeaderAddress, signer.EthAddress().Hex())
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))
	req.Header.Set(HeaderSignature, signature)
	return req
}

// post signs with a timestamp a few seconds back per call so repeated identical posts stay distinct requests.
func (s *testServer) post(t *testing.T, signer commonutil.Signer, path string, body interface{}) *http.Response {
	s.posts++
	return s.do(t, s.signedRequest(t, signer, path, body, s.clock.Now().Unix()-s.posts%30))
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	var body ErrorResponse
	decode(t, resp, &body)
	return body
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func missionRequest() AddMissionRequest {
	return AddMissionRequest{
		StartTime:      testEpoch.Add(time.Hour),
		LaunchDeadline: testEpoch.Add(2 * time.Hour),
		ClaimDelaySecs: 600,
		RewardPerShip:  "100",
		CostPerShip:    "1000",
		BoostThresholds: []string{
			ether(1).String(),
			ether(2).String(),
			ether(3).String(),
			ether(4).String(),
		},
		Title:       "Mission to Mars",
		Description: "first mission",
		ResourceURI: "Random IPFS hash",
	}
}
