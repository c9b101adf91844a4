package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableserve/cmd"
	"tableserve/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	// a missing broker degrades the service, it does not stop it
	if err := root.Transport().Connect(); err != nil {
		logger.Warn("broker unavailable at startup, continuing degraded", "error", err)
	}
	go func() {
		<-root.Transport().Failed()
		logger.Error("broker reconnect attempts exhausted, running without agent transport")
	}()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	root.CreateHTTPServer().RegisterRoutes(e, root.Hub().Handle)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil {
			logger.Info("http server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	jobManager.StopAll()
	root.Transport().Disconnect()
	root.Hub().Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		MqttBrokerURL:            goDotEnvVariable("MQTT_BROKER_URL"),
		MqttClientID:             goDotEnvVariable("MQTT_CLIENT_ID"),
		MqttUsername:             goDotEnvVariable("MQTT_USERNAME"),
		MqttPassword:             goDotEnvVariable("MQTT_PASSWORD"),
		MqttKeepAliveSeconds:     goDotEnvVariable("MQTT_KEEPALIVE_SECONDS"),
		MqttReconnectMaxAttempts: goDotEnvVariable("MQTT_RECONNECT_MAX_ATTEMPTS"),
		MqttReconnectBaseDelayMS: goDotEnvVariable("MQTT_RECONNECT_BASE_DELAY_MS"),
		MqttReconnectMaxDelayMS:  goDotEnvVariable("MQTT_RECONNECT_MAX_DELAY_MS"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}
