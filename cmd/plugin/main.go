package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"kromer-flow-plugin/internal/cache"
	"kromer-flow-plugin/internal/command"
	"kromer-flow-plugin/internal/config"
	"kromer-flow-plugin/internal/flow"
	"kromer-flow-plugin/internal/keystore"
	"kromer-flow-plugin/internal/kromer"
	"kromer-flow-plugin/internal/repository"
	"kromer-flow-plugin/internal/shopapi"
	"kromer-flow-plugin/internal/shops"
)

func main() {
	// stdout carries the launcher response; all logging goes to stderr.
	logrus.SetOutput(os.Stderr)

	cfg := config.MustLoad()
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("component", "main")

	// Payload cache: memory by default, Redis when configured so fetched
	// pages survive plugin restarts. Falls back to memory on connection
	// failure.
	var payloads cache.PayloadCache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisPayloadCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.WithError(err).Warn("redis unavailable, using memory cache")
			payloads = cache.NewMemoryPayloadCache()
		} else {
			defer redisCache.Close()
			payloads = redisCache
		}
	default:
		payloads = cache.NewMemoryPayloadCache()
	}

	store, err := repository.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to open local store")
	}
	defer store.Close()

	shopClient := shopapi.New(shopapi.Config{
		BaseURL:    cfg.Shop.BaseURL,
		Timeout:    cfg.Shop.Timeout,
		PayloadTTL: cfg.Cache.TTL,
	}, payloads)
	registry := shops.NewRegistry(shopClient, cfg.Cache.TTL)
	links := shops.NewLinks(cfg.Links.BluemapURL, cfg.Links.KrawletURL, cfg.Links.HeadsURL, cfg.Shop.BaseURL)

	kromerClient := kromer.New(kromer.Config{
		BaseURL: cfg.Kromer.BaseURL,
		Timeout: cfg.Kromer.Timeout,
	})
	keys := keystore.New(cfg.Store.Service, store)

	deps := command.Deps{
		Keyword:       cfg.App.Keyword,
		Registry:      registry,
		Links:         links,
		Kromer:        kromerClient,
		Keys:          keys,
		Aliases:       store,
		AddressPrefix: cfg.Kromer.AddressPrefix,
	}

	manager := command.NewManager(cfg.App.Keyword)
	manager.Register(
		command.NewShopCommand(deps),
		command.NewBalanceCommand(deps),
		command.NewSendCommand(deps),
		command.NewTxCommand(deps),
		command.NewTxViewCommand(deps),
		command.NewLatestCommand(deps),
		command.NewNamesCommand(deps),
		command.NewAliasCommand(deps),
		command.NewUnaliasCommand(deps),
		command.NewAliasesCommand(deps),
		command.NewImportCommand(deps),
		command.NewDeleteCommand(deps),
		command.NewWalletsCommand(deps),
	)
	manager.Register(command.NewHelpCommand(manager))

	req := flow.ParseRequest(strings.Join(os.Args[1:], " "))
	res := manager.Dispatch(context.Background(), req.Query())

	out, err := json.Marshal(res)
	if err != nil {
		log.WithError(err).Fatal("failed to encode response")
	}
	fmt.Println(string(out))
}
