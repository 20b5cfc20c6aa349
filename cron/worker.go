package cron

import (
	"context"
	"log"
	"time"

	"fixly/config"
	"fixly/services/earnings"
	"fixly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeEarningsRollup = "earnings:rollup"

// rollupInterval is how often the commission sweep is enqueued.
const rollupInterval = 24 * time.Hour

// InitEarningsWorker runs the async worker and the daily rollup schedule in
// the background.
func InitEarningsWorker(earningsSvc earnings.EarningsService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEarningsRollup, handleRollupTask(earningsSvc))

	go monitorRedisConnection(redisOpts)
	go scheduleRollups(redisOpts)

	go func() {
		log.Println("[EarningsWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EarningsWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EarningsWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// EnqueueRollup puts an immediate rollup task on the queue. Used by the admin
// trigger endpoint in addition to the daily schedule.
func EnqueueRollup() error {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	})
	defer client.Close()

	_, err := client.Enqueue(asynq.NewTask(TypeEarningsRollup, nil))
	return err
}

func handleRollupTask(earningsSvc earnings.EarningsService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		processed, err := earningsSvc.RunRollup()
		if err != nil {
			utils.GetLogger().Error("Earnings rollup failed", zap.Error(err))
			return err
		}
		utils.GetLogger().Info("Earnings rollup finished", zap.Int("bookingsProcessed", processed))
		return nil
	}
}

// scheduleRollups enqueues a rollup task once per interval.
func scheduleRollups(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(rollupInterval)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := client.Enqueue(asynq.NewTask(TypeEarningsRollup, nil)); err != nil {
			log.Printf("[EarningsWorker] Failed to enqueue rollup: %v", err)
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(redisOpts asynq.RedisClientOpt) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisOpts.Addr,
		Password: redisOpts.Password,
		DB:       redisOpts.DB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[EarningsWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
