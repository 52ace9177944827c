package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/logger"
	"github.com/mesa-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name      string
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	consumer  *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	scheduler, err := buildScheduler(opt, cfg.Cart.PurgeCron)
	if err != nil {
		return nil, err
	}
	return &Service{
		name:      "worker",
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		consumer:  consumer,
	}, nil
}

// buildScheduler 注册周期任务；cron 为空时不启用
func buildScheduler(opt asynq.RedisClientOpt, purgeCron string) (*asynq.Scheduler, error) {
	purgeCron = strings.TrimSpace(purgeCron)
	if purgeCron == "" {
		return nil, nil
	}
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.Local})
	entryID, err := scheduler.Register(purgeCron, queue.NewCartPurgeTask(), asynq.Queue(queue.DefaultQueue), asynq.MaxRetry(1))
	if err != nil {
		return nil, err
	}
	logger.Infow("worker_scheduler_registered", "task", queue.TaskCartPurgeExpired, "cron", purgeCron, "entry_id", entryID)
	return scheduler, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return err
		}
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	s.server.Shutdown()
	return nil
}
