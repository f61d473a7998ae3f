package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v9"

	"priceghost/internal/client"
	"priceghost/internal/configuration"
	"priceghost/internal/database"
	"priceghost/internal/logger"
	"priceghost/internal/server"
)

func main() {
	if err := runApp(); err != nil {
		os.Exit(1)
	}
}

func runApp() error {
	appContext := context.Background()
	logOutput := io.Writer(os.Stdout)
	appLogger := logger.NewLogger(logger.LevelInfo, logOutput)

	defer func() {
		if r := recover(); r != nil {
			appLogger.Errorf("APPLICATION CRASHED: %+v", r)
		}
	}()

	config, err := configuration.GetConfig("config.toml")
	if err != nil {
		appLogger.Error("Error getting configuration from config.toml:", err)
		return err
	}

	if config.LogToFile {
		logFile, err := os.OpenFile("priceghost.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			appLogger.Error("Error opening log file:", err)
			return err
		}
		defer func() {
			if err := logFile.Close(); err != nil {
				appLogger.Error("Error closing log file:", err)
			}
		}()
		logOutput = io.MultiWriter(logOutput, logFile)
	}
	appLogger = logger.NewLogger(config.LogLevel, logOutput)

	appLogger.Info("Connecting to DB at", config.DatabaseURI)
	dbConn, err := database.ConnectDB(appContext, config.DatabaseURI)
	if err != nil {
		appLogger.Error("Error connecting to DB:", err)
		return err
	}
	defer func() {
		if err := dbConn.Disconnect(appContext); err != nil {
			appLogger.Error("Error disconnecting from DB:", err)
		}
	}()

	redisOpts, err := redis.ParseURL(config.RedisURI)
	if err != nil {
		appLogger.Error("Error parsing Redis URI:", err)
		return err
	}

	srv := server.Server{
		DB: database.Database{Database: dbConn.Database(database.Name)},
		Client: client.Client{
			Client:       &http.Client{Timeout: config.FetchTimeout},
			Redis:        redis.NewClient(redisOpts),
			Logger:       appLogger,
			ResendAPIKey: config.ResendAPIKey,
			EmailFrom:    config.EmailFrom,
			UserAgents:   config.UserAgents,
		},
		Logger:         appLogger,
		AuthSecretKey:  config.AuthSecretKey,
		CronSecret:     config.CronSecret,
		SweepBatchSize: config.SweepBatchSize,
		CheckInterval:  config.CheckInterval,
	}

	appLogger.Info("Starting price-check sweep with interval:", config.CheckInterval)
	go srv.CheckPricesInInterval(appContext, time.NewTicker(config.CheckInterval))

	appLogger.Info("Starting weekly digest scheduler")
	go srv.WeeklyDigestInInterval(appContext, time.NewTicker(24*time.Hour))

	httpSrv := &http.Server{
		Handler:      srv.Router(),
		Addr:         config.ServerAddress,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	appLogger.Info("Serving on", httpSrv.Addr)
	if err = httpSrv.ListenAndServe(); err != nil {
		appLogger.Error("HTTP server error:", err)
		return err
	}
	return nil
}
