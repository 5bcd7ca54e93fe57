package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/pkg/imagegen"
)

type statsStub struct {
	pingErr   error
	countsErr error
	counts    repository.TableCounts
}

func (s *statsStub) Ping(_ context.Context) error { return s.pingErr }

func (s *statsStub) Counts(_ context.Context) (repository.TableCounts, error) {
	if s.countsErr != nil {
		return repository.TableCounts{}, s.countsErr
	}
	return s.counts, nil
}

type proberStub struct {
	image imagegen.ProbeResult
	text  imagegen.ProbeResult
}

func (p *proberStub) ProbeImage(_ context.Context) imagegen.ProbeResult { return p.image }
func (p *proberStub) ProbeText(_ context.Context) imagegen.ProbeResult  { return p.text }

func TestHealthReportAllHealthy(t *testing.T) {
	stats := &statsStub{counts: repository.TableCounts{Classes: 1, Submissions: 4}}
	prober := &proberStub{
		image: imagegen.ProbeResult{Status: imagegen.StatusHealthy},
		text:  imagegen.ProbeResult{Status: imagegen.StatusHealthy},
	}
	svc := NewHealthService(stats, prober, time.Second, testLogger())

	report := svc.Report(context.Background())
	require.Equal(t, HealthStatusHealthy, report.Status)
	require.NotNil(t, report.Database.Counts)
	require.Equal(t, int64(4), report.Database.Counts.Submissions)
}

func TestHealthReportDatabaseDownIsUnhealthy(t *testing.T) {
	stats := &statsStub{pingErr: errors.New("connection refused")}
	prober := &proberStub{
		image: imagegen.ProbeResult{Status: imagegen.StatusHealthy},
		text:  imagegen.ProbeResult{Status: imagegen.StatusHealthy},
	}
	svc := NewHealthService(stats, prober, time.Second, testLogger())

	report := svc.Report(context.Background())
	require.Equal(t, HealthStatusUnhealthy, report.Status)
	require.Equal(t, imagegen.StatusError, report.Database.Status)

	// Failures are isolated: the process section still reports healthy.
	require.Equal(t, HealthStatusHealthy, report.Process.Status)
	require.Positive(t, report.Process.Goroutines)
}

func TestHealthReportDegradedProbe(t *testing.T) {
	stats := &statsStub{}
	prober := &proberStub{
		image: imagegen.ProbeResult{Status: imagegen.StatusDegraded, Detail: "non-image payload"},
		text:  imagegen.ProbeResult{Status: imagegen.StatusHealthy},
	}
	svc := NewHealthService(stats, prober, time.Second, testLogger())

	report := svc.Report(context.Background())
	require.Equal(t, HealthStatusDegraded, report.Status)
}

func TestHealthReportCountsFailureDegradesDatabase(t *testing.T) {
	stats := &statsStub{countsErr: errors.New("permission denied")}
	prober := &proberStub{
		image: imagegen.ProbeResult{Status: imagegen.StatusHealthy},
		text:  imagegen.ProbeResult{Status: imagegen.StatusHealthy},
	}
	svc := NewHealthService(stats, prober, time.Second, testLogger())

	report := svc.Report(context.Background())
	require.Equal(t, imagegen.StatusDegraded, report.Database.Status)
	require.Equal(t, HealthStatusDegraded, report.Status)
}
