package workers

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	HealthUnknown  = "unknown"
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// Pinger is the part of a store backend the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status    string    `json:"status"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// StoreHealth pings the backing store on a schedule and keeps the latest
// outcome for the health endpoint.
type StoreHealth struct {
	backend  Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status HealthStatus
	sched  gocron.Scheduler
}

func NewStoreHealth(backend Pinger, interval time.Duration, logger *zap.Logger) *StoreHealth {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := interval / 2
	if timeout > 10*time.Second {
		timeout = 10 * time.Second
	}
	return &StoreHealth{
		backend:  backend,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		status:   HealthStatus{Status: HealthUnknown},
	}
}

// Start schedules the probe, running the first one immediately.
func (h *StoreHealth) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(h.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
			defer cancel()
			h.CheckNow(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}

	h.mu.Lock()
	h.sched = sched
	h.mu.Unlock()

	sched.Start()
	h.logger.Info("store health checks scheduled", zap.Duration("interval", h.interval))
	return nil
}

func (h *StoreHealth) Stop() error {
	h.mu.Lock()
	sched := h.sched
	h.sched = nil
	h.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

// CheckNow pings the store once and records the result.
func (h *StoreHealth) CheckNow(ctx context.Context) HealthStatus {
	next := HealthStatus{Status: HealthOK, CheckedAt: time.Now().UTC()}
	if err := h.backend.Ping(ctx); err != nil {
		next.Status = HealthDegraded
		next.Error = err.Error()
	}

	h.mu.Lock()
	prev := h.status.Status
	h.status = next
	h.mu.Unlock()

	if prev != next.Status {
		if next.Status == HealthOK {
			h.logger.Info("store reachable", zap.String("previous", prev))
		} else {
			h.logger.Warn("store unreachable", zap.String("previous", prev), zap.String("error", next.Error))
		}
	}
	return next
}

func (h *StoreHealth) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}
