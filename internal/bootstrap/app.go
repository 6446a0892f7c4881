package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"carnage-ai/internal/config"
	"carnage-ai/internal/model"
	mysqlClient "carnage-ai/internal/platform/mysql"
	rabbitmqClient "carnage-ai/internal/platform/rabbitmq"
	redisClient "carnage-ai/internal/platform/redis"
	"carnage-ai/internal/repository"
	"carnage-ai/internal/session"
	"carnage-ai/internal/worker"
)

type App struct {
	Config       *config.Config
	MySQL        *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	Sessions     *session.RedisStore
	StatusWorker *worker.TrainingStatusWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.MaxOpenConns, cfg.MySQL.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Model{}, &model.TrainingSession{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	sessions := session.NewRedisStore(redisCli, time.Duration(cfg.Auth.SessionTTLMinute)*time.Minute)

	trainingRepo := repository.NewTrainingSessionRepository(mysqlDB)
	statusWorker := worker.NewTrainingStatusWorker(mqConn, trainingRepo, cfg.RabbitMQ.TrainingStatusQueue)
	if err := statusWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start training status worker failed: %w", err)
	}

	return &App{
		Config:       cfg,
		MySQL:        mysqlDB,
		Redis:        redisCli,
		MQConn:       mqConn,
		Sessions:     sessions,
		StatusWorker: statusWorker,
		StartedAt:    time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.StatusWorker != nil {
		a.StatusWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
