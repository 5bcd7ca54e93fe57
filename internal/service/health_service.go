package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/pkg/imagegen"
)

// Composite statuses reported by the health aggregator.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"
)

// ProcessHealth reports liveness of the API process itself.
type ProcessHealth struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Goroutines    int     `json:"goroutines"`
	HeapBytes     uint64  `json:"heap_bytes"`
}

// DatabaseHealth reports connectivity and row counts.
type DatabaseHealth struct {
	Status    string                  `json:"status"`
	LatencyMS int64                   `json:"latency_ms"`
	Detail    string                  `json:"detail,omitempty"`
	Counts    *repository.TableCounts `json:"counts,omitempty"`
}

// HealthReport is the composite payload of the health endpoint.
type HealthReport struct {
	Status    string               `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
	Process   ProcessHealth        `json:"process"`
	Database  DatabaseHealth       `json:"database"`
	ImageAPI  imagegen.ProbeResult `json:"image_api"`
	TextAPI   imagegen.ProbeResult `json:"text_api"`
}

// ExternalProber checks reachability of the generation services.
type ExternalProber interface {
	ProbeImage(ctx context.Context) imagegen.ProbeResult
	ProbeText(ctx context.Context) imagegen.ProbeResult
}

// HealthService aggregates component liveness into one report.
type HealthService interface {
	Report(ctx context.Context) HealthReport
}

type healthService struct {
	stats        repository.StatsRepository
	prober       ExternalProber
	probeTimeout time.Duration
	startedAt    time.Time
	logger       zerolog.Logger
	now          func() time.Time
}

// NewHealthService constructs a HealthService instance.
func NewHealthService(stats repository.StatsRepository, prober ExternalProber, probeTimeout time.Duration, logger zerolog.Logger) HealthService {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}

	return &healthService{
		stats:        stats,
		prober:       prober,
		probeTimeout: probeTimeout,
		startedAt:    time.Now(),
		logger:       logger.With().Str("component", "health_service").Logger(),
		now:          time.Now,
	}
}

// Report runs every check with its own timeout so one slow dependency cannot
// fail the others, then folds the component statuses into the overall one.
func (s *healthService) Report(ctx context.Context) HealthReport {
	report := HealthReport{
		Timestamp: s.now().UTC(),
		Process:   s.processHealth(),
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		checkCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
		defer cancel()
		report.Database = s.databaseHealth(checkCtx)
	}()

	go func() {
		defer wg.Done()
		checkCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
		defer cancel()
		report.ImageAPI = s.prober.ProbeImage(checkCtx)
	}()

	go func() {
		defer wg.Done()
		checkCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
		defer cancel()
		report.TextAPI = s.prober.ProbeText(checkCtx)
	}()

	wg.Wait()

	report.Status = overallStatus(report.Database.Status, report.ImageAPI.Status, report.TextAPI.Status)
	if report.Status != HealthStatusHealthy {
		s.logger.Warn().Str("status", report.Status).Msg("health check not fully healthy")
	}

	return report
}

func (s *healthService) processHealth() ProcessHealth {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return ProcessHealth{
		Status:        HealthStatusHealthy,
		UptimeSeconds: s.now().Sub(s.startedAt).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		HeapBytes:     mem.HeapAlloc,
	}
}

func (s *healthService) databaseHealth(ctx context.Context) DatabaseHealth {
	start := s.now()
	if err := s.stats.Ping(ctx); err != nil {
		return DatabaseHealth{
			Status:    imagegen.StatusError,
			LatencyMS: time.Since(start).Milliseconds(),
			Detail:    err.Error(),
		}
	}

	health := DatabaseHealth{Status: imagegen.StatusHealthy}

	counts, err := s.stats.Counts(ctx)
	if err != nil {
		health.Status = imagegen.StatusDegraded
		health.Detail = err.Error()
	} else {
		health.Counts = &counts
	}

	health.LatencyMS = time.Since(start).Milliseconds()

	return health
}

func overallStatus(componentStatuses ...string) string {
	status := HealthStatusHealthy
	for _, component := range componentStatuses {
		switch component {
		case imagegen.StatusError:
			return HealthStatusUnhealthy
		case imagegen.StatusDegraded:
			status = HealthStatusDegraded
		}
	}

	return status
}
