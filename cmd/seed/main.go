// Command seed writes the development seed employees into EMPLOYEE_TABLE_NAME.
package main

import (
	"context"
	"log"

	"employee-directory-backend/common"
	"employee-directory-backend/config"
	"employee-directory-backend/employee"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.RequireTable(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := common.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := common.NewDynamoDBClient(ctx, cfg.DynamoDBEndpoint)
	if err != nil {
		logger.Fatal("unable to load SDK config", zap.Error(err))
	}

	store := employee.NewDynamoStore(client, cfg.TableName, employee.WithLogger(logger))
	for _, e := range employee.SeedEmployees() {
		if err := store.Put(ctx, e.ID, e); err != nil {
			logger.Fatal("Failed to seed employee", zap.String("id", e.ID), zap.Error(err))
		}
		logger.Info("Seeded employee", zap.String("id", e.ID), zap.String("name", e.Name))
	}
}
