package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"

	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/internal/eth"
	"github.com/layer-3/voyager/ports"
	"github.com/layer-3/voyager/transport/graphql"
)

// bootstrapQuests are completed best effort on every freshly registered
// wallet; their failure does not fail the wallet.
var bootstrapQuests = []struct {
	ID   string
	Name string
}{
	{ID: "create_account", Name: "Create Account"},
	{ID: "daily_login", Name: "Daily Login"},
}

// FarmWorker generates fresh wallet identities and runs each through the
// full login, referral registration, and bootstrap quest sequence. Wallets
// are processed strictly one at a time.
type FarmWorker struct {
	cfg      *config.Config
	sessions ports.SessionStore
	events   ports.EventPublisher
	log      watermill.LoggerAdapter
}

// NewFarmWorker creates a farm worker. events may be nil.
func NewFarmWorker(cfg *config.Config, sessions ports.SessionStore, events ports.EventPublisher, logger watermill.LoggerAdapter) *FarmWorker {
	return &FarmWorker{cfg: cfg, sessions: sessions, events: events, log: logger}
}

// Run generates count wallets and registers each under the referral code.
// A wallet counts as successful only if login and the whole post-login
// sequence completed; post-login failures are not retried, the worker just
// moves on to the next generated wallet. Successful pairs are appended to
// the output records; a write failure is logged, not fatal.
func (w *FarmWorker) Run(ctx context.Context, referralCode string, count int) ([]core.FarmedWallet, error) {
	runID := uuid.New().String()
	w.log.Info("farm run starting", watermill.LogFields{
		"run_id":   runID,
		"referral": referralCode,
		"count":    count,
	})

	var successes []core.FarmedWallet
	for i := 0; i < count; i++ {
		w.log.Info("processing generated account", watermill.LogFields{
			"index": i + 1,
			"of":    count,
		})

		wallet, err := eth.Generate()
		if err != nil {
			return successes, fmt.Errorf("generate wallet: %w", err)
		}

		err = w.registerAndComplete(ctx, wallet, referralCode)
		ok := err == nil
		if ok {
			successes = append(successes, core.FarmedWallet{
				Address:    wallet.Address(),
				PrivateKey: wallet.PrivateKeyHex(),
			})
			w.log.Info("account registered", watermill.LogFields{"wallet": wallet.ShortAddress()})
		} else {
			w.log.Error("account failed", err, watermill.LogFields{"wallet": wallet.ShortAddress()})
		}

		if w.events != nil {
			if err := w.events.PublishWalletFarmed(ctx, runID, wallet.Address(), ok); err != nil {
				w.log.Error("failed to publish farm event", err, nil)
			}
		}

		if i < count-1 {
			w.cfg.FarmDelay.Sleep()
		}
	}

	if len(successes) == 0 {
		w.log.Info("no wallets were processed successfully", nil)
		return successes, nil
	}

	if err := w.writeOutputs(referralCode, successes); err != nil {
		w.log.Error("failed to write output files", err, nil)
	}
	return successes, nil
}

// registerAndComplete runs one generated wallet through login, inviter
// linking, bootstrap quests, and the one-time recruit bonus.
func (w *FarmWorker) registerAndComplete(ctx context.Context, wallet *eth.Wallet, referralCode string) error {
	client, err := NewSessionClient(ctx, wallet, w.cfg, w.sessions, w.events, w.log, "")
	if err != nil {
		return err
	}
	if err := client.Login(ctx); err != nil {
		return err
	}

	w.log.Info("submitting referral code", watermill.LogFields{"wallet": wallet.ShortAddress()})
	if _, err := client.Send(ctx, graphql.LinkToInviterMutation, map[string]any{"inviterCode": referralCode}); err != nil {
		return fmt.Errorf("link to inviter: %w", err)
	}
	w.cfg.ActionDelay.Sleep()

	for _, quest := range bootstrapQuests {
		w.log.Info("solving bootstrap quest", watermill.LogFields{"quest": quest.Name})
		// Best effort: a rejected bootstrap quest does not fail the wallet,
		// but a dead transport does.
		if _, err := client.Send(ctx, graphql.CompleteQuestMutation, map[string]any{"questId": quest.ID}); err != nil {
			return fmt.Errorf("bootstrap quest %s: %w", quest.ID, err)
		}
		w.cfg.ActionDelay.Sleep()
	}

	w.log.Info("claiming recruit bonus", watermill.LogFields{"wallet": wallet.ShortAddress()})
	if _, err := client.Send(ctx, graphql.ClaimInitialRecruitRewardsMutation, nil); err != nil {
		return fmt.Errorf("claim recruit bonus: %w", err)
	}
	return nil
}

// writeOutputs appends successes to the per-code records: one file with
// address/key pairs, one with bare keys.
func (w *FarmWorker) writeOutputs(referralCode string, wallets []core.FarmedWallet) error {
	dir := filepath.Join(w.cfg.DataDir, "referral")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pairs := ""
	keys := ""
	for _, wallet := range wallets {
		pairs += fmt.Sprintf("address: %s - privkey: %s\n", wallet.Address, wallet.PrivateKey)
		keys += wallet.PrivateKey + "\n"
	}

	pairPath := filepath.Join(dir, "success_"+referralCode+".txt")
	if err := appendFile(pairPath, pairs); err != nil {
		return err
	}
	w.log.Info("saved farmed wallets", watermill.LogFields{"file": pairPath, "count": len(wallets)})

	keyPath := filepath.Join(dir, "pk_"+referralCode+".txt")
	if err := appendFile(keyPath, keys); err != nil {
		return err
	}
	w.log.Info("saved private keys", watermill.LogFields{"file": keyPath, "count": len(wallets)})
	return nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
