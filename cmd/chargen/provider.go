package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/config"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/repositories/characters"
	"github.com/veilwright/wod-chargen/internal/services/creation"
	"github.com/veilwright/wod-chargen/internal/services/eligibility"
	"github.com/veilwright/wod-chargen/internal/services/ledger"
)

// runtime wires the services a command needs. Close releases the Redis
// connection when one was opened.
type runtime struct {
	Creation creation.Service
	Registry *rulebook.Registry

	redisClient *redis.Client
}

func (r *runtime) Close() {
	if r.redisClient != nil {
		_ = r.redisClient.Close()
	}
}

func setup() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	registry, err := rulebook.NewRegistry()
	if err != nil {
		return nil, err
	}

	cat := catalog.NewCached(catalog.NewStatic())

	eligibilitySvc, err := eligibility.NewService(&eligibility.ServiceConfig{Catalog: cat})
	if err != nil {
		return nil, err
	}

	ledgerSvc, err := ledger.NewService(&ledger.ServiceConfig{
		Catalog:     cat,
		Eligibility: eligibilitySvc,
	})
	if err != nil {
		return nil, err
	}

	rt := &runtime{Registry: registry}

	// Try Redis; fall back to in-memory storage so the CLI stays usable
	// without a server.
	repo := repository(cfg, rt)

	creationSvc, err := creation.NewService(&creation.ServiceConfig{
		Repository:  repo,
		Registry:    registry,
		Catalog:     cat,
		Eligibility: eligibilitySvc,
		Ledger:      ledgerSvc,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Creation = creationSvc
	return rt, nil
}

func repository(cfg *config.Config, rt *runtime) characters.Repository {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("Redis unavailable at %s, using in-memory storage: %v", cfg.Redis.Addr, err)
		return characters.NewInMemoryRepository()
	}

	rt.redisClient = client
	return characters.NewRedisRepository(&characters.RedisRepoConfig{
		Client:        client,
		UnfinishedTTL: cfg.Workflow.UnfinishedTTL,
	})
}
