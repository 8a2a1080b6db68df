package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/transport/graphql"
)

// ProfileService reads account resources and profile stats for one
// logged-in client.
type ProfileService struct {
	client *SessionClient
	log    watermill.LoggerAdapter
}

// NewProfileService creates a profile service over an established session.
func NewProfileService(client *SessionClient, logger watermill.LoggerAdapter) *ProfileService {
	return &ProfileService{client: client, log: logger}
}

// Resources returns the account's resource balances, non-zero amounts
// first in descending order.
func (s *ProfileService) Resources(ctx context.Context) ([]core.Resource, error) {
	resp, err := s.client.Send(ctx, graphql.AccountResourcesQuery, nil)
	if err != nil {
		return nil, err
	}
	var data graphql.ResourcesData
	if err := resp.Decode(&data); err != nil {
		return nil, fmt.Errorf("account resources: %w", err)
	}

	resources := data.Account.Resources
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].Amount.GreaterThan(resources[j].Amount)
	})
	return resources, nil
}

// Stats returns the profile's leaderboard entry. It needs the session's
// opaque user id; a client without one cannot run profile-dependent
// routines and is reported rather than retried.
func (s *ProfileService) Stats(ctx context.Context) (*core.LeaderboardEntry, error) {
	uid := s.client.UID()
	if uid == "" {
		return nil, core.ErrUIDRequired
	}

	resp, err := s.client.Send(ctx, graphql.GetProfileQuery, map[string]any{"uid": uid})
	if err != nil {
		return nil, err
	}

	var data graphql.LeaderboardData
	if err := resp.Decode(&data); err != nil {
		return nil, fmt.Errorf("profile stats: %w", err)
	}
	if data.QuestPointsLeaderboardByUID == nil || data.QuestPointsLeaderboardByUID.Profile == nil {
		if err := resp.Err(); err != nil {
			return nil, fmt.Errorf("profile stats: %w", err)
		}
		return nil, fmt.Errorf("profile stats: profile not found")
	}

	entry := data.QuestPointsLeaderboardByUID
	s.log.Info("profile stats", watermill.LogFields{
		"display_name": entry.Profile.DisplayName,
		"level":        entry.Profile.Level,
		"quest_points": entry.Profile.QuestPoints,
		"position":     entry.Position,
	})
	return entry, nil
}
