package api

import (
	"context"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	commonutil "github.com/dan13ram/spaceship-staking/common"
	"github.com/dan13ram/spaceship-staking/ledger"
	"github.com/dan13ram/spaceship-staking/models"
)

// maxClaimDelaySecs is the longest claim delay that fits a time.Duration.
const maxClaimDelaySecs = math.MaxInt64 / int64(time.Second)

// Ledger is the set of ledger operations exposed over HTTP.
type Ledger interface {
	AddMission(ctx context.Context, caller common.Address, params ledger.MissionParams) (uint64, error)
	DisableMission(ctx context.Context, caller common.Address, missionID uint64) error
	GetMissionCount(ctx context.Context) (uint64, error)
	GetMission(ctx context.Context, missionID uint64) (*models.Mission, error)
	GetMissions(ctx context.Context) ([]models.Mission, error)
	StartMission(ctx context.Context, caller common.Address, missionID uint64, shipCount uint64, payment ledger.NativePayment) (uint64, error)
	GetUsersLaunchedMission(ctx context.Context) (uint64, error)
	GetLaunchedMissionPerMissionIdsCountForUser(ctx context.Context, user common.Address, missionID uint64) (uint64, error)
	GetLaunchedMissionOfUser(ctx context.Context, user common.Address, missionID uint64, index uint64) (*models.Launch, error)
	GetMissionLaunchCount(ctx context.Context, missionID uint64) (uint64, error)
	GetLaunchesOfUser(ctx context.Context, user common.Address) ([]models.Launch, error)
	GetNativeBalance(ctx context.Context) (*big.Int, error)
	ClaimReward(ctx context.Context, caller common.Address, missionID uint64, index uint64) (*ledger.Settlement, error)
	ClaimToken(ctx context.Context, caller common.Address, missionID uint64, index uint64) ([]*big.Int, error)
}

// PaymentVerifier resolves a native payment transaction into the amount sender paid to custody.
type PaymentVerifier interface {
	Verify(txHash string, sender common.Address) (*big.Int, error)
}

type AddMissionRequest struct {
	StartTime       time.Time `json:"start_time"`
	LaunchDeadline  time.Time `json:"launch_deadline"`
	ClaimDelaySecs  int64     `json:"claim_delay_secs"`
	RewardPerShip   string    `json:"reward_per_ship"`
	CostPerShip     string    `json:"cost_per_ship"`
	BoostThresholds []string  `json:"boost_thresholds"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ResourceURI     string    `json:"resource_uri"`
}

type StartMissionRequest struct {
	ShipCount     uint64 `json:"ship_count"`
	PaymentTxHash string `json:"payment_tx_hash"`
}

type Handlers struct {
	ledger   Ledger
	payments PaymentVerifier
}

func NewHandlers(l Ledger, payments PaymentVerifier) *Handlers {
	return &Handlers{ledger: l, payments: payments}
}

func uintParam(c *fiber.Ctx, name string) (uint64, error) {
	value, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return value, nil
}

func addressParam(c *fiber.Ctx, name string) (common.Address, error) {
	value := c.Params(name)
	if !commonutil.IsValidEthereumAddress(value) {
		return common.Address{}, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return common.HexToAddress(value), nil
}

func countJSON(c *fiber.Ctx, count uint64) error {
	return c.JSON(fiber.Map{"count": count})
}

func (h *Handlers) AddMission(c *fiber.Ctx) error {
	var req AddMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	rewardPerShip, err := commonutil.ParseAmount(req.RewardPerShip)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid reward_per_ship")
	}
	costPerShip, err := commonutil.ParseAmount(req.CostPerShip)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cost_per_ship")
	}
	thresholds, err := commonutil.ParseAmounts(req.BoostThresholds)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid boost_thresholds")
	}
	if req.ClaimDelaySecs > maxClaimDelaySecs {
		return fiber.NewError(fiber.StatusBadRequest, "invalid claim_delay_secs")
	}

	missionID, err := h.ledger.AddMission(c.UserContext(), callerOf(c), ledger.MissionParams{
		StartTime:       req.StartTime,
		LaunchDeadline:  req.LaunchDeadline,
		ClaimDelay:      time.Duration(req.ClaimDelaySecs) * time.Second,
		RewardPerShip:   rewardPerShip,
		CostPerShip:     costPerShip,
		BoostThresholds: thresholds,
		Title:           req.Title,
		Description:     req.Description,
		ResourceURI:     req.ResourceURI,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mission_id": missionID})
}

func (h *Handlers) DisableMission(c *fiber.Ctx) error {
	missionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.ledger.DisableMission(c.UserContext(), callerOf(c), missionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"mission_id": missionID, "enabled": false})
}

func (h *Handlers) GetMissionCount(c *fiber.Ctx) error {
	count, err := h.ledger.GetMissionCount(c.UserContext())
	if err != nil {
		return err
	}
	return countJSON(c, count)
}

func (h *Handlers) GetMissions(c *fiber.Ctx) error {
	missions, err := h.ledger.GetMissions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(missions)
}

func (h *Handlers) GetMission(c *fiber.Ctx) error {
	missionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	mission, err := h.ledger.GetMission(c.UserContext(), missionID)
	if err != nil {
		return err
	}
	return c.JSON(mission)
}

func (h *Handlers) GetMissionLaunchCount(c *fiber.Ctx) error {
	missionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.ledger.GetMissionLaunchCount(c.UserContext(), missionID)
	if err != nil {
		return err
	}
	return countJSON(c, count)
}

// StartMission launches ships on a mission. A payment_tx_hash boosts the launch by the
// native amount that transaction paid to custody, and can back only one launch.
func (h *Handlers) StartMission(c *fiber.Ctx) error {
	missionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req StartMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	caller := callerOf(c)
	payment := ledger.NativePayment{}
	if txHash := strings.TrimSpace(req.PaymentTxHash); txHash != "" {
		if h.payments == nil {
			return errorJSON(c, fiber.StatusBadRequest, CodeInvalidPayment, "native payments are not accepted")
		}
		amount, err := h.payments.Verify(txHash, caller)
		if err != nil {
			log.WithError(err).WithField("tx_hash", txHash).Debug("[API] Payment verification failed")
			return errorJSON(c, fiber.StatusBadRequest, CodeInvalidPayment, err.Error())
		}
		payment = ledger.NativePayment{Amount: amount, Reference: txHash}
	}

	index, err := h.ledger.StartMission(c.UserContext(), caller, missionID, req.ShipCount, payment)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mission_id": missionID, "index": index})
}

func (h *Handlers) launchParams(c *fiber.Ctx) (uint64, uint64, error) {
	missionID, err := uintParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	index, err := uintParam(c, "index")
	if err != nil {
		return 0, 0, err
	}
	return missionID, index, nil
}

func (h *Handlers) ClaimReward(c *fiber.Ctx) error {
	missionID, index, err := h.launchParams(c)
	if err != nil {
		return err
	}
	settlement, err := h.ledger.ClaimReward(c.UserContext(), callerOf(c), missionID, index)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"stake":      settlement.Stake.String(),
		"reward":     settlement.Reward.String(),
		"payout":     settlement.Payout.String(),
		"multiplier": settlement.Multiplier,
	})
}

func (h *Handlers) ClaimToken(c *fiber.Ctx) error {
	missionID, index, err := h.launchParams(c)
	if err != nil {
		return err
	}
	tokenIds, err := h.ledger.ClaimToken(c.UserContext(), callerOf(c), missionID, index)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token_ids": commonutil.FormatAmounts(tokenIds)})
}

func (h *Handlers) GetUsersLaunchedMission(c *fiber.Ctx) error {
	count, err := h.ledger.GetUsersLaunchedMission(c.UserContext())
	if err != nil {
		return err
	}
	return countJSON(c, count)
}

func (h *Handlers) GetLaunchesOfUser(c *fiber.Ctx) error {
	user, err := addressParam(c, "address")
	if err != nil {
		return err
	}
	launches, err := h.ledger.GetLaunchesOfUser(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(launches)
}

func (h *Handlers) GetLaunchedMissionPerMissionIdsCountForUser(c *fiber.Ctx) error {
	user, err := addressParam(c, "address")
	if err != nil {
		return err
	}
	missionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.ledger.GetLaunchedMissionPerMissionIdsCountForUser(c.UserContext(), user, missionID)
	if err != nil {
		return err
	}
	return countJSON(c, count)
}

func (h *Handlers) GetLaunchedMissionOfUser(c *fiber.Ctx) error {
	user, err := addressParam(c, "address")
	if err != nil {
		return err
	}
	missionID, index, err := h.launchParams(c)
	if err != nil {
		return err
	}
	launch, err := h.ledger.GetLaunchedMissionOfUser(c.UserContext(), user, missionID, index)
	if err != nil {
		return err
	}
	return c.JSON(launch)
}

func (h *Handlers) GetNativeBalance(c *fiber.Ctx) error {
	balance, err := h.ledger.GetNativeBalance(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"balance": balance.String()})
}
