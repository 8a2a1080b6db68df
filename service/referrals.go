package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/transport/graphql"
)

// ReferralService drains recruit points and claims referral rewards for one
// logged-in client.
type ReferralService struct {
	client *SessionClient
	delay  config.Range
	log    watermill.LoggerAdapter
}

// NewReferralService creates a referral service over an established session.
func NewReferralService(client *SessionClient, delay config.Range, logger watermill.LoggerAdapter) *ReferralService {
	return &ReferralService{client: client, delay: delay, log: logger}
}

// Account fetches the wallet's own referral account.
func (s *ReferralService) Account(ctx context.Context) (*core.ReferralAccount, error) {
	resp, err := s.client.Send(ctx, graphql.FullReferralQuery, nil)
	if err != nil {
		return nil, err
	}
	var data graphql.ReferralData
	if err := resp.Decode(&data); err != nil {
		return nil, fmt.Errorf("referral account: %w", err)
	}
	if data.Account.Profile.ReferralAccount == nil {
		return nil, fmt.Errorf("referral account: %w", core.ErrSessionInvalid)
	}
	return data.Account.Profile.ReferralAccount, nil
}

// ClaimRecruitPoints drains every recruit with a positive point balance.
// Per recruit it keeps claiming until the returned balance reaches zero or
// a claim fails, in which case that recruit is abandoned and the next one
// processed. A server rejection and a transport failure end the inner loop
// identically. Returns the number of recruits fully drained.
func (s *ReferralService) ClaimRecruitPoints(ctx context.Context) (int, error) {
	account, err := s.Account(ctx)
	if err != nil {
		return 0, err
	}

	var claimable []core.Recruit
	for _, r := range account.Recruits {
		if r.Claimable() {
			claimable = append(claimable, r)
		}
	}
	if len(claimable) == 0 {
		s.log.Info("no referral points available to claim", nil)
		return 0, nil
	}

	s.log.Info("found recruits with available points", watermill.LogFields{"count": len(claimable)})

	drained := 0
	for _, recruit := range claimable {
		if s.drainRecruit(ctx, recruit) {
			drained++
		}
	}
	return drained, nil
}

// drainRecruit claims from one recruit until its balance is exhausted.
func (s *ReferralService) drainRecruit(ctx context.Context, recruit core.Recruit) bool {
	fields := watermill.LogFields{"recruit": recruit.Label()}
	s.log.Info("processing recruit", fields)

	remaining := recruit.AvailablePoints
	for remaining > 0 {
		resp, err := s.client.Send(ctx, graphql.ClaimRecruitPointsMutation, map[string]any{
			"uid": recruit.Profile.UID,
		})
		if err != nil {
			s.log.Error("recruit claim failed", err, fields)
			return false
		}

		var data graphql.ClaimRecruitPointsData
		if err := resp.Decode(&data); err != nil || data.ClaimRecruitPoints == nil {
			if err == nil {
				err = resp.Err()
			}
			s.log.Error("recruit claim not confirmed", err, fields)
			return false
		}

		remaining = data.ClaimRecruitPoints.Recruit.AvailablePoints
		s.log.Info("recruit points claimed", fields.Add(watermill.LogFields{
			"quest_points": data.ClaimRecruitPoints.QuestPoints,
			"remaining":    remaining,
		}))

		if remaining > 0 {
			s.delay.Sleep()
		}
	}

	s.log.Info("recruit fully drained", fields)
	return true
}

// ClaimInitialRewards claims the one-time recruit bonus. A non-success
// response surfaces the server's message; callers usually just log it.
func (s *ReferralService) ClaimInitialRewards(ctx context.Context) error {
	resp, err := s.client.Send(ctx, graphql.ClaimInitialRecruitRewardsMutation, nil)
	if err != nil {
		return err
	}

	var data graphql.ClaimInitialRecruitRewardsData
	if err := resp.Decode(&data); err != nil {
		return fmt.Errorf("initial recruit rewards: %w", err)
	}
	if data.ClaimInitialRecruitRewards == nil || !data.ClaimInitialRecruitRewards.Success {
		if err := resp.Err(); err != nil {
			return fmt.Errorf("initial recruit rewards: %w", err)
		}
		return fmt.Errorf("initial recruit rewards: server did not confirm")
	}

	s.log.Info("initial recruit reward claimed", nil)
	return nil
}
