package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/transport/graphql"
)

// QuestService drives the quest claim and auto-solve routines for one
// logged-in client.
type QuestService struct {
	client *SessionClient
	delay  config.Range
	log    watermill.LoggerAdapter
}

// NewQuestService creates a quest service over an established session.
func NewQuestService(client *SessionClient, delay config.Range, logger watermill.LoggerAdapter) *QuestService {
	return &QuestService{client: client, delay: delay, log: logger}
}

// Progress fetches the account's current quest progress. State is never
// cached: every loop iteration calls this again.
func (s *QuestService) Progress(ctx context.Context) ([]core.QuestProgress, error) {
	resp, err := s.client.Send(ctx, graphql.QuestProgressQuery, nil)
	if err != nil {
		return nil, err
	}
	var data graphql.QuestProgressData
	if err := resp.Decode(&data); err != nil {
		return nil, fmt.Errorf("quest progress: %w", err)
	}
	return data.Account.QuestProgresses, nil
}

// ClaimReady claims every READY_TO_CLAIM quest, re-fetching after each pass
// because claims can unlock further quests server-side. It stops on the
// first fetch that yields nothing claimable and returns the session total;
// zero is a valid outcome. A single failed claim is logged and skipped,
// never aborting the pass.
func (s *QuestService) ClaimReady(ctx context.Context) (int, error) {
	total := 0
	for {
		progress, err := s.Progress(ctx)
		if err != nil {
			return total, err
		}

		var ready []core.QuestProgress
		for _, p := range progress {
			if p.Status == core.QuestReadyToClaim {
				ready = append(ready, p)
			}
		}
		if len(ready) == 0 {
			if total == 0 {
				s.log.Info("no quests are ready to be claimed", nil)
			} else {
				s.log.Info("all available quests claimed", watermill.LogFields{"total": total})
			}
			return total, nil
		}

		s.log.Info("found claimable quests", watermill.LogFields{"count": len(ready)})
		for _, p := range ready {
			if s.claim(ctx, p.Quest) {
				total++
			}
			s.delay.Sleep()
		}

		s.log.Debug("re-checking for newly unlocked quests", nil)
		s.delay.Sleep()
	}
}

// SolveAuto makes a single best-effort pass over IN_PROGRESS quests that
// need no external verification. Each quest is attempted exactly once;
// failures are logged, not retried.
func (s *QuestService) SolveAuto(ctx context.Context) (int, error) {
	progress, err := s.Progress(ctx)
	if err != nil {
		return 0, err
	}

	var solvable []core.QuestProgress
	for _, p := range progress {
		if p.AutoSolvable() {
			solvable = append(solvable, p)
		}
	}
	if len(solvable) == 0 {
		s.log.Info("no auto-solvable quests found", nil)
		return 0, nil
	}

	s.log.Info("processing auto-solvable quests", watermill.LogFields{"count": len(solvable)})
	solved := 0
	for _, p := range solvable {
		if s.claim(ctx, p.Quest) {
			solved++
		}
		s.delay.Sleep()
	}
	return solved, nil
}

// claim issues one complete-quest mutation. Success is decided solely by
// the mutation's success field; anything else counts as a per-item failure.
func (s *QuestService) claim(ctx context.Context, quest core.Quest) bool {
	fields := watermill.LogFields{"quest": quest.Name}

	resp, err := s.client.Send(ctx, graphql.CompleteQuestMutation, map[string]any{"questId": quest.ID})
	if err != nil {
		s.log.Error("quest claim failed", err, fields)
		return false
	}

	var data graphql.CompleteQuestData
	if err := resp.Decode(&data); err != nil {
		s.log.Error("quest claim not confirmed", err, fields)
		return false
	}
	if data.CompleteQuest == nil || !data.CompleteQuest.Success {
		s.log.Info("quest claim rejected by server", fields)
		return false
	}

	s.log.Info("quest claimed", fields)
	return true
}
