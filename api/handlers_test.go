package api

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan13ram/spaceship-staking/models"
)

const paymentTxHash = "0x8a4f2fb3b4e7d7c8f5a1e9b4c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1"

type countResponse struct {
	Count uint64 `json:"count"`
}

type launchResponse struct {
	MissionID uint64 `json:"mission_id"`
	Index     uint64 `json:"index"`
}

type settlementResponse struct {
	Stake      string `json:"stake"`
	Reward     string `json:"reward"`
	Payout     string `json:"payout"`
	Multiplier uint8  `json:"multiplier"`
}

func (s *testServer) addMission(t *testing.T) uint64 {
	resp := s.post(t, s.admin, "/missions", missionRequest())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		MissionID uint64 `json:"mission_id"`
	}
	decode(t, resp, &body)
	return body.MissionID
}

func (s *testServer) count(t *testing.T, path string) uint64 {
	resp := s.get(t, path)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body countResponse
	decode(t, resp, &body)
	return body.Count
}

func TestMissionFlow(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.alice.EthAddress().Hex()

	missionID := s.addMission(t)
	assert.Equal(t, uint64(0), missionID)
	assert.Equal(t, uint64(1), s.count(t, "/missions/count"))

	resp := s.get(t, "/missions/0")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var mission models.Mission
	decode(t, resp, &mission)
	assert.Equal(t, "Mission to Mars", mission.Metadata.Title)
	assert.Equal(t, "Random IPFS hash", mission.Metadata.ResourceURI)
	assert.Equal(t, "1000", mission.CostPerShip)
	assert.Equal(t, 10*time.Minute, mission.ClaimDelay)
	assert.True(t, mission.Enabled)

	resp = s.get(t, "/missions")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var missions []models.Mission
	decode(t, resp, &missions)
	assert.Len(t, missions, 1)

	resp = s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 3})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "MISSION_NOT_STARTED", decodeError(t, resp).Code)

	s.clock.Advance(time.Hour)
	s.token.fund(s.alice.EthAddress(), 3000)

	resp = s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var launched launchResponse
	decode(t, resp, &launched)
	assert.Equal(t, launchResponse{MissionID: 0, Index: 0}, launched)

	assert.Equal(t, uint64(1), s.count(t, "/users/count"))
	assert.Equal(t, uint64(1), s.count(t, "/users/"+alice+"/missions/0/count"))
	assert.Equal(t, uint64(1), s.count(t, "/missions/0/launches/count"))

	resp = s.get(t, "/users/"+alice+"/missions/0/launches/0")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var launch models.Launch
	decode(t, resp, &launch)
	assert.Equal(t, uint64(3), launch.ShipCount)
	assert.Equal(t, "3000", launch.Stake)
	assert.Equal(t, uint8(1), launch.Multiplier)
	assert.False(t, launch.RewardClaimed)

	resp = s.get(t, "/users/"+alice+"/launches")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var launches []models.Launch
	decode(t, resp, &launches)
	assert.Len(t, launches, 1)

	resp = s.post(t, s.alice, "/missions/0/launches/0/claim-reward", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CLAIM_WINDOW_NOT_OPEN", decodeError(t, resp).Code)

	resp = s.post(t, s.alice, "/missions/0/launches/0/claim-token", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "REWARD_NOT_YET_CLAIMED", decodeError(t, resp).Code)

	s.clock.Advance(time.Hour + 10*time.Minute)
	s.token.fund(custodyAddress, 300)

	resp = s.post(t, s.alice, "/missions/0/launches/0/claim-reward", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var settlement settlementResponse
	decode(t, resp, &settlement)
	assert.Equal(t, settlementResponse{Stake: "3000", Reward: "300", Payout: "3300", Multiplier: 1}, settlement)

	balance, err := s.token.BalanceOf(context.Background(), s.alice.EthAddress())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3300), balance)

	resp = s.post(t, s.alice, "/missions/0/launches/0/claim-reward", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_CLAIMED", decodeError(t, resp).Code)

	resp = s.post(t, s.alice, "/missions/0/launches/0/claim-token", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var minted struct {
		TokenIds []string `json:"token_ids"`
	}
	decode(t, resp, &minted)
	assert.Equal(t, []string{"0", "1", "2"}, minted.TokenIds)

	resp = s.post(t, s.alice, "/missions/0/launches/0/claim-token", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_MINTED", decodeError(t, resp).Code)
}

func TestAddMission(t *testing.T) {
	t.Run("Not Admin", func(t *testing.T) {
		s := newTestServer(t, nil)
		resp := s.post(t, s.alice, "/missions", missionRequest())
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)
	})

	t.Run("Unsigned", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := s.signedRequest(t, s.admin, "/missions", missionRequest(), s.clock.Now().Unix())
		req.Header.Del(HeaderSignature)

		resp := s.do(t, req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := missionRequest()
		req.RewardPerShip = "one hundred"

		resp := s.post(t, s.admin, "/missions", req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, CodeBadRequest, body.Code)
		assert.Equal(t, "invalid reward_per_ship", body.Error)
	})

	t.Run("Three Thresholds", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := missionRequest()
		req.BoostThresholds = req.BoostThresholds[:3]

		resp := s.post(t, s.admin, "/missions", req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BOOST_CONFIG", decodeError(t, resp).Code)
	})

	t.Run("Inverted Window", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := missionRequest()
		req.StartTime, req.LaunchDeadline = req.LaunchDeadline, req.StartTime

		resp := s.post(t, s.admin, "/missions", req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_MISSION_WINDOW", decodeError(t, resp).Code)
	})

	t.Run("Claim Delay Too Long", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := missionRequest()
		req.ClaimDelaySecs = maxClaimDelaySecs + 1

		resp := s.post(t, s.admin, "/missions", req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid claim_delay_secs", decodeError(t, resp).Error)
		assert.Equal(t, uint64(0), s.count(t, "/missions/count"))

		req.ClaimDelaySecs = maxClaimDelaySecs
		resp = s.post(t, s.admin, "/missions", req)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("Negative Claim Delay", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := missionRequest()
		req.ClaimDelaySecs = -1

		resp := s.post(t, s.admin, "/missions", req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_MISSION_WINDOW", decodeError(t, resp).Code)
	})

	t.Run("Sequential Ids", func(t *testing.T) {
		s := newTestServer(t, nil)
		assert.Equal(t, uint64(0), s.addMission(t))
		assert.Equal(t, uint64(1), s.addMission(t))
		assert.Equal(t, uint64(2), s.count(t, "/missions/count"))
	})
}

func TestDisableMission(t *testing.T) {
	s := newTestServer(t, nil)
	s.addMission(t)

	resp := s.post(t, s.alice, "/missions/0/disable", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	for i := 0; i < 2; i++ {
		resp = s.post(t, s.admin, "/missions/0/disable", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body struct {
			MissionID uint64 `json:"mission_id"`
			Enabled   bool   `json:"enabled"`
		}
		decode(t, resp, &body)
		assert.False(t, body.Enabled)
	}

	resp = s.post(t, s.admin, "/missions/5/disable", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	s.clock.Advance(time.Hour)
	s.token.fund(s.alice.EthAddress(), 1000)
	resp = s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "MISSION_INACTIVE", decodeError(t, resp).Code)
}

func TestStartMission(t *testing.T) {
	t.Run("Zero Ships", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.addMission(t)
		s.clock.Advance(time.Hour)

		resp := s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 0})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_SHIP_COUNT", decodeError(t, resp).Code)
	})

	t.Run("Closed", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.addMission(t)
		s.clock.Advance(2 * time.Hour)

		resp := s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 1})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "MISSION_CLOSED", decodeError(t, resp).Code)
	})

	t.Run("Stake Not Approved", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.addMission(t)
		s.clock.Advance(time.Hour)

		resp := s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 2})
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "TRANSFER_FAILED", decodeError(t, resp).Code)
		assert.Equal(t, uint64(0), s.count(t, "/missions/0/launches/count"))
	})

	t.Run("Replayed Launch", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.addMission(t)
		s.clock.Advance(time.Hour)
		s.token.fund(s.alice.EthAddress(), 10000)

		timestamp := s.clock.Now().Unix()
		body := StartMissionRequest{ShipCount: 1}
		resp := s.do(t, s.signedRequest(t, s.alice, "/missions/0/launches", body, timestamp))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = s.do(t, s.signedRequest(t, s.alice, "/missions/0/launches", body, timestamp))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "request replayed", decodeError(t, resp).Error)

		assert.Equal(t, uint64(1), s.count(t, "/missions/0/launches/count"))
		balance, err := s.token.BalanceOf(context.Background(), s.alice.EthAddress())
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(9000), balance)
	})

	t.Run("Payment Without Verifier", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.addMission(t)
		s.clock.Advance(time.Hour)
		s.token.fund(s.alice.EthAddress(), 1000)

		resp := s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 1, PaymentTxHash: paymentTxHash})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, CodeInvalidPayment, decodeError(t, resp).Code)
	})

	t.Run("Boosted By Payment", func(t *testing.T) {
		s := newTestServer(t, &fakePayments{amounts: map[string]*big.Int{paymentTxHash: ether(5)}})
		s.addMission(t)
		s.clock.Advance(time.Hour)
		s.token.fund(s.alice.EthAddress(), 2000)

		resp := s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 1, PaymentTxHash: " " + paymentTxHash + " "})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = s.get(t, "/users/"+s.alice.EthAddress().Hex()+"/missions/0/launches/0")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var launch models.Launch
		decode(t, resp, &launch)
		assert.Equal(t, uint8(5), launch.Multiplier)
		assert.Equal(t, ether(5).String(), launch.NativePayment)

		resp = s.get(t, "/native-balance")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var balance struct {
			Balance string `json:"balance"`
		}
		decode(t, resp, &balance)
		assert.Equal(t, ether(5).String(), balance.Balance)

		resp = s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 1, PaymentTxHash: paymentTxHash})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "DUPLICATE_PAYMENT", decodeError(t, resp).Code)
	})

	t.Run("Unverified Payment", func(t *testing.T) {
		s := newTestServer(t, &fakePayments{})
		s.addMission(t)
		s.clock.Advance(time.Hour)
		s.token.fund(s.alice.EthAddress(), 1000)

		resp := s.post(t, s.alice, "/missions/0/launches", StartMissionRequest{ShipCount: 1, PaymentTxHash: paymentTxHash})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, CodeInvalidPayment, body.Code)
		assert.Equal(t, "transaction not found", body.Error)
	})
}

func TestReadEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	s.addMission(t)
	alice := s.alice.EthAddress().Hex()

	t.Run("Invalid Mission Id", func(t *testing.T) {
		resp := s.get(t, "/missions/abc")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid id", decodeError(t, resp).Error)
	})

	t.Run("Unknown Mission", func(t *testing.T) {
		resp := s.get(t, "/missions/7")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
	})

	t.Run("Invalid Address", func(t *testing.T) {
		resp := s.get(t, "/users/0x1234/launches")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid address", decodeError(t, resp).Error)
	})

	t.Run("No Launches Yet", func(t *testing.T) {
		assert.Equal(t, uint64(0), s.count(t, "/users/count"))
		assert.Equal(t, uint64(0), s.count(t, "/users/"+alice+"/missions/0/count"))
		assert.Equal(t, uint64(0), s.count(t, "/missions/0/launches/count"))
	})

	t.Run("Index Out Of Range", func(t *testing.T) {
		resp := s.get(t, "/users/"+alice+"/missions/0/launches/0")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "INDEX_OUT_OF_RANGE", decodeError(t, resp).Code)
	})

	t.Run("Native Balance Empty", func(t *testing.T) {
		resp := s.get(t, "/native-balance")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var balance struct {
			Balance string `json:"balance"`
		}
		decode(t, resp, &balance)
		assert.Equal(t, "0", balance.Balance)
	})

	t.Run("Other Users Launches Are Separate", func(t *testing.T) {
		bob := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC").Hex()
		assert.Equal(t, uint64(0), s.count(t, "/users/"+bob+"/missions/0/count"))
	})
}
