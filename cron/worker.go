package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"slotpoll/config"
	"slotpoll/models"
	"slotpoll/services/poll"
	"slotpoll/services/tasks"

	"github.com/hibiken/asynq"
)

// InitSweepWorker runs the async worker in background. It processes
// retention-sweep tasks enqueued at poll creation, deleting polls whose date
// range plus retention window is in the past.
func InitSweepWorker(pollSvc poll.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
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
	mux.HandleFunc(tasks.TypePollSweep, handleSweepTask(pollSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSweepTask(pollSvc poll.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.SweepPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SweepHandler] invalid payload: %v", err)
			return err
		}

		return pollSvc.SweepExpired(ctx, p.PollID)
	}
}

// NewSweepClient builds the asynq client used to enqueue sweep tasks.
func NewSweepClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	})
}
