package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/order"

	"go.uber.org/zap"
)

// purge removes orders by id, items first:
//
//	purge <order-id> [<order-id>...]
func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <order-id> [<order-id>...]\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := purge(ctx, order.NewRepository(database), flag.Args()); err != nil {
		logger.L().Fatal("purge failed", zap.Error(err))
	}
}

// purge deletes each order in ids. Unknown ids are logged and skipped; any
// other failure stops the run.
func purge(ctx context.Context, repo order.Repository, ids []string) (int, error) {
	log := logger.FromCtx(ctx)

	deleted := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		err := repo.DeleteOrder(ctx, id)
		if errors.Is(err, order.ErrOrderNotFound) {
			log.Warn("order not found, skipping", zap.String("order_id", id))
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("delete order %s: %w", id, err)
		}
		deleted++
		log.Info("order deleted", zap.String("order_id", id))
	}

	log.Info("purge finished", zap.Int("deleted", deleted), zap.Int("requested", len(ids)))
	return deleted, nil
}
