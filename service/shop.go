package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/transport/graphql"
)

// Chest ids offered by the daily shop.
const (
	FreeChestID = "free_uncommon_chest_1"
	PaidChestID = "coin_common_chest_1"
)

// ShopService opens the daily chests for one logged-in client.
type ShopService struct {
	client        *SessionClient
	delay         config.Range
	paidAllowance int
	log           watermill.LoggerAdapter
}

// NewShopService creates a shop service. paidAllowance caps how many paid
// chests a run may buy; zero or negative skips them entirely.
func NewShopService(client *SessionClient, delay config.Range, paidAllowance int, logger watermill.LoggerAdapter) *ShopService {
	return &ShopService{client: client, delay: delay, paidAllowance: paidAllowance, log: logger}
}

// Chests fetches the current shop listing.
func (s *ShopService) Chests(ctx context.Context) ([]core.Chest, error) {
	resp, err := s.client.Send(ctx, graphql.GetShopChestsQuery, nil)
	if err != nil {
		return nil, err
	}
	var data graphql.ShopChestsData
	if err := resp.Decode(&data); err != nil {
		return nil, fmt.Errorf("shop chests: %w", err)
	}
	return data.Account.GetShopChests, nil
}

// OpenDaily opens today's remaining chests: every remaining free chest, and
// paid chests up to the configured allowance. A zero remainder issues no
// mutations at all. Returns the number of chests opened.
func (s *ShopService) OpenDaily(ctx context.Context) (int, error) {
	chests, err := s.Chests(ctx)
	if err != nil {
		return 0, err
	}
	if len(chests) == 0 {
		s.log.Info("no chests available in the shop", nil)
		return 0, nil
	}

	opened := 0
	if free := findChest(chests, FreeChestID); free != nil {
		s.log.Info("daily free chest", watermill.LogFields{
			"remaining": free.Remaining(),
			"limit":     free.DailyLimit,
		})
		opened += s.openN(ctx, free.ID, free.Remaining())
	}

	if paid := findChest(chests, PaidChestID); paid != nil {
		remaining := paid.Remaining()
		s.log.Info("daily paid chest", watermill.LogFields{
			"remaining": remaining,
			"limit":     paid.DailyLimit,
		})
		if s.paidAllowance <= 0 {
			s.log.Info("skipping paid chests, allowance disabled", nil)
		} else {
			if remaining > s.paidAllowance {
				remaining = s.paidAllowance
			}
			opened += s.openN(ctx, paid.ID, remaining)
		}
	}

	return opened, nil
}

func (s *ShopService) openN(ctx context.Context, chestID string, count int) int {
	opened := 0
	for i := 0; i < count; i++ {
		reward, err := s.open(ctx, chestID)
		if err != nil {
			s.log.Error("failed to open chest", err, watermill.LogFields{"chest": chestID})
		} else {
			s.log.Info("chest opened", watermill.LogFields{"chest": chestID, "prize": reward.Label()})
			opened++
		}
		s.delay.Sleep()
	}
	return opened
}

func (s *ShopService) open(ctx context.Context, chestID string) (*core.ChestReward, error) {
	resp, err := s.client.Send(ctx, graphql.BuyAndOpenChestMutation, map[string]any{"chestId": chestID})
	if err != nil {
		return nil, err
	}
	var data graphql.BuyAndOpenChestData
	if err := resp.Decode(&data); err != nil {
		return nil, err
	}
	if data.BuyAndOpenChest == nil {
		if err := resp.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("server did not confirm chest open")
	}
	return data.BuyAndOpenChest, nil
}

func findChest(chests []core.Chest, id string) *core.Chest {
	for i := range chests {
		if chests[i].ID == id {
			return &chests[i]
		}
	}
	return nil
}
