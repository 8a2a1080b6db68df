package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/joho/godotenv"

	"github.com/layer-3/voyager/adapters/events"
	"github.com/layer-3/voyager/adapters/store"
	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/internal/eth"
	"github.com/layer-3/voyager/ports"
	"github.com/layer-3/voyager/service"
)

func main() {
	action := flag.String("action", "daily", "what to run per wallet: daily, claim, solve, referrals, bonus, chests, resources, stats, farm")
	farmCount := flag.Int("farm-count", 0, "number of wallets to generate for the farm action")
	farmCode := flag.String("farm-code", "", "referral code for the farm action (defaults to the first wallet's own code)")
	debugLogs := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Optional; a missing .env just means plain environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := watermill.NewStdLogger(*debugLogs, false)
	ctx := context.Background()

	sessions, eventPub, cleanup, err := buildInfra(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to set up infrastructure: %v", err)
	}
	defer cleanup()

	keys, err := config.ReadPrivateKeys(cfg.PrivateKeyFile)
	if err != nil {
		log.Fatalf("failed to read wallet keys: %v", err)
	}
	if len(keys) == 0 {
		log.Fatalf("no valid private keys found in %s", cfg.PrivateKeyFile)
	}
	logger.Info("loaded wallet keys", watermill.LogFields{"count": len(keys)})

	var proxies []string
	if cfg.UseProxy {
		proxies, err = config.ReadProxies(cfg.ProxyFile)
		if err != nil {
			log.Fatalf("failed to read proxies: %v", err)
		}
		logger.Info("loaded proxies", watermill.LogFields{"count": len(proxies)})
	}

	for i, key := range keys {
		proxy := ""
		if len(proxies) > 0 {
			proxy = proxies[i%len(proxies)]
		}
		runWallet(ctx, cfg, sessions, eventPub, logger, key, proxy, *action, *farmCode, *farmCount)

		if i < len(keys)-1 {
			cfg.AccountDelay.Sleep()
		}
	}

	logger.Info("run finished", nil)
}

// runWallet processes one wallet to completion. A panic ends only this
// wallet's run, not the whole process.
func runWallet(
	ctx context.Context,
	cfg *config.Config,
	sessions ports.SessionStore,
	eventPub ports.EventPublisher,
	logger watermill.LoggerAdapter,
	key, proxy, action, farmCode string,
	farmCount int,
) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("wallet run panicked", fmt.Errorf("%v", r), watermill.LogFields{
				"trace": string(debug.Stack()),
			})
		}
	}()

	wallet, err := eth.ParseKey(key)
	if err != nil {
		logger.Error("skipping invalid key", err, nil)
		return
	}
	fields := watermill.LogFields{"wallet": wallet.ShortAddress()}

	client, err := service.NewSessionClient(ctx, wallet, cfg, sessions, eventPub, logger, proxy)
	if err != nil {
		logger.Error("failed to build session client", err, fields)
		return
	}
	if err := client.Login(ctx); err != nil {
		logger.Error("skipping wallet, login failed", err, fields)
		return
	}

	quests := service.NewQuestService(client, cfg.ActionDelay, logger)
	referrals := service.NewReferralService(client, cfg.ActionDelay, logger)
	shop := service.NewShopService(client, cfg.ActionDelay, cfg.PaidChestAllowance, logger)
	profile := service.NewProfileService(client, logger)

	switch action {
	case "claim":
		_, err = quests.ClaimReady(ctx)
	case "solve":
		_, err = quests.SolveAuto(ctx)
	case "referrals":
		_, err = referrals.ClaimRecruitPoints(ctx)
	case "bonus":
		err = referrals.ClaimInitialRewards(ctx)
	case "chests":
		_, err = shop.OpenDaily(ctx)
	case "resources":
		_, err = profile.Resources(ctx)
	case "stats":
		_, err = profile.Stats(ctx)
	case "farm":
		err = runFarm(ctx, cfg, sessions, eventPub, logger, referrals, farmCode, farmCount)
	case "daily":
		err = runDaily(ctx, quests, referrals, shop)
	default:
		logger.Error("unknown action", fmt.Errorf("action %q", action), nil)
		return
	}
	if err != nil {
		logger.Error("wallet action ended with error", err, fields)
	}
}

// runDaily is the everything-pass: solve what can be solved, claim what is
// ready, drain recruits, open chests.
func runDaily(ctx context.Context, quests *service.QuestService, referrals *service.ReferralService, shop *service.ShopService) error {
	if _, err := quests.SolveAuto(ctx); err != nil {
		return err
	}
	if _, err := quests.ClaimReady(ctx); err != nil {
		return err
	}
	if _, err := referrals.ClaimRecruitPoints(ctx); err != nil {
		return err
	}
	_, err := shop.OpenDaily(ctx)
	return err
}

// runFarm resolves the referral code and slot budget, then hands off to the
// farm worker.
func runFarm(
	ctx context.Context,
	cfg *config.Config,
	sessions ports.SessionStore,
	eventPub ports.EventPublisher,
	logger watermill.LoggerAdapter,
	referrals *service.ReferralService,
	farmCode string,
	farmCount int,
) error {
	if farmCount <= 0 {
		return fmt.Errorf("farm action needs -farm-count > 0")
	}

	if farmCode == "" {
		account, err := referrals.Account(ctx)
		if err != nil {
			return fmt.Errorf("resolve referral code: %w", err)
		}
		if account.Code == "" {
			return fmt.Errorf("wallet has no referral code")
		}
		farmCode = account.Code

		open := account.OpenSlots()
		logger.Info("referral slots", watermill.LogFields{
			"code": farmCode,
			"used": len(account.Recruits),
			"max":  account.MaxRecruits,
		})
		if open == 0 {
			return fmt.Errorf("referral slots are full")
		}
		if farmCount > open {
			logger.Info("capping farm count to open slots", watermill.LogFields{"open": open})
			farmCount = open
		}
	}

	worker := service.NewFarmWorker(cfg, sessions, eventPub, logger)
	_, err := worker.Run(ctx, farmCode, farmCount)
	return err
}

// buildInfra wires the session store and event publisher: redis-backed when
// REDIS_URL is set, local file store and in-process pubsub otherwise.
func buildInfra(ctx context.Context, cfg *config.Config, logger watermill.LoggerAdapter) (ports.SessionStore, ports.EventPublisher, func(), error) {
	if cfg.RedisURL == "" {
		sessions, err := store.NewFileStore(cfg.SessionDir)
		if err != nil {
			return nil, nil, nil, err
		}
		pubsub := gochannel.NewGoChannel(gochannel.Config{}, logger)
		return sessions, events.NewWatermillPublisher(pubsub), func() { _ = pubsub.Close() }, nil
	}

	sessions, err := store.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: sessions.GetClient(),
	}, logger)
	if err != nil {
		sessions.Close()
		return nil, nil, nil, fmt.Errorf("create redis publisher: %w", err)
	}

	cleanup := func() {
		_ = publisher.Close()
		_ = sessions.Close()
	}
	return sessions, events.NewWatermillPublisher(publisher), cleanup, nil
}
