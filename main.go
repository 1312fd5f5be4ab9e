package main

import (
	"context"
	"log"

	"employee-directory-backend/api"
	"employee-directory-backend/common"
	"employee-directory-backend/config"
	"employee-directory-backend/employee"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func newRouter(store employee.Store, logger *zap.Logger) *api.Router {
	handlers := employee.NewHandlers(store, logger)

	router := api.NewRouter(logger)
	router.AddRoute("GET", "/api/employees", handlers.GetEmployees)
	router.AddRoute("GET", "/api/employees/(?P<id>[^/]+)", handlers.GetEmployee)
	router.AddRoute("POST", "/api/employee/registration", handlers.PostRegistration)
	return router
}

func main() {
	cfg, err := config.LoadLambda()
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}

	logger, err := common.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("unable to build logger, %v", err)
	}
	zap.ReplaceGlobals(logger)

	// Load the shared AWS configuration and create the DynamoDB client
	dynamoDbClient, err := common.NewDynamoDBClient(context.Background(), cfg.DynamoDBEndpoint)
	if err != nil {
		logger.Fatal("unable to load SDK config", zap.Error(err))
	}

	store := employee.NewDynamoStore(dynamoDbClient, cfg.TableName, employee.WithLogger(logger))
	router := newRouter(store, logger)

	lambda.Start(router.Serve)
}
