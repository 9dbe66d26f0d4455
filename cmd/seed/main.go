package main

import (
	"context"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type sample struct {
	name        string
	category    string
	price       string
	description string
}

var samples = []sample{
	{"Lenovo ThinkPad X1 Carbon", "Electronics", "38500.00", "Lightweight business laptop with Intel i7 processor"},
	{"Apple iPhone 15", "Electronics", "42999.00", "Latest generation iPhone with A17 Bionic chip"},
	{"Xiaomi Smartwatch 8 Pro", "Electronics", "5800.00", "Smartwatch with health monitoring features"},
	{"Nike Air Max Sneakers", "Fashion", "4200.00", "Comfortable sneakers with air cushion sole"},
	{"Ikea Markus Chair", "Home & Living", "4500.00", "Ergonomic office chair with adjustable height"},
}

func main() {
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

	if err := seed(ctx, product.NewRepository(database)); err != nil {
		logger.L().Fatal("seeding failed", zap.Error(err))
	}
}

// seed inserts the sample catalog into an empty products table.
func seed(ctx context.Context, repo product.Repository) error {
	log := logger.FromCtx(ctx)

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("products already exist, skipping seeding", zap.Int("count", n))
		return nil
	}

	for _, s := range samples {
		desc := s.description
		p := &product.Product{
			Name:        s.name,
			Category:    s.category,
			Price:       decimal.RequireFromString(s.price),
			Description: &desc,
		}
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
	}

	log.Info("seeded products", zap.Int("count", len(samples)))
	return nil
}
