package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-workforce/internal/attendance"
	"go-workforce/internal/employee"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/messaging/kafka/consumer"
	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"
	"go-workforce/internal/shared/cache"
	"go-workforce/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer feeds badge-terminal punch events into the punch service until
// interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	redisCache := cache.NewRedisCache(redisClient)

	employeeRepo := employee.NewRepository(gormDB)
	ruleRepo := rule.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	directory := employee.NewDirectory(employeeRepo)
	ruleResolver := rule.NewResolver(ruleRepo, directory, redisCache)
	holidayResolver := attendance.NewHolidayResolver(scheduleRepo, ruleResolver)
	overtimeCalculator := attendance.NewOvertimeCalculator(scheduleRepo, holidayResolver)
	autoCompletion := attendance.NewAutoCompletionEngine(attendanceRepo, scheduleRepo, holidayResolver)

	attendanceService := attendance.NewService(
		sqlDB,
		attendanceRepo,
		outboxRepo,
		ruleResolver,
		overtimeCalculator,
		holidayResolver,
		directory,
		autoCompletion,
		redisCache,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.DevicePunchTopic,
		GroupID:        "go-workforce-attendance",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeDevicePunches(ctx, reader, attendanceService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
