package grpc

import (
	"context"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName — имя сервиса в health-протоколе; пустое имя означает весь сервер.
const ServiceName = "monvix.PriceTracker"

const (
	probeInterval = 10 * time.Second
	probeTimeout  = 3 * time.Second
)

// Probe проверяет одну зависимость (БД, Redis).
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type statusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

type probeWatcher struct {
	health   statusSetter
	probes   []Probe
	interval time.Duration
	logger   logger.Logger
	last     healthpb.HealthCheckResponse_ServingStatus
}

func newProbeWatcher(health statusSetter, logger logger.Logger, probes ...Probe) *probeWatcher {
	return &probeWatcher{
		health:   health,
		probes:   probes,
		interval: probeInterval,
		logger:   logger,
		last:     healthpb.HealthCheckResponse_UNKNOWN,
	}
}

func (w *probeWatcher) run(ctx context.Context) {
	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check выставляет NOT_SERVING, если хотя бы одна проба не прошла.
func (w *probeWatcher) check(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING

	for _, p := range w.probes {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.Check(probeCtx)
		cancel()

		if err != nil {
			w.logger.Warnf("health probe %s failed: %v", p.Name, err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	if status != w.last {
		w.logger.Infof("health status changed: %s -> %s", w.last, status)
		w.last = status
	}

	w.health.SetServingStatus("", status)
	w.health.SetServingStatus(ServiceName, status)
}
