package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type recordingHealth struct {
	statuses map[string]healthpb.HealthCheckResponse_ServingStatus
}

func (h *recordingHealth) SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus) {
	h.statuses[service] = status
}

func TestProbeWatcherCheck(t *testing.T) {
	var dbErr error
	probes := []Probe{
		{Name: "postgres", Check: func(context.Context) error { return dbErr }},
		{Name: "redis", Check: func(context.Context) error { return nil }},
	}

	h := &recordingHealth{statuses: map[string]healthpb.HealthCheckResponse_ServingStatus{}}
	w := newProbeWatcher(h, logger.Nop{}, probes...)

	w.check(context.Background())
	if h.statuses[""] != healthpb.HealthCheckResponse_SERVING || h.statuses[ServiceName] != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("want SERVING, got %v", h.statuses)
	}

	dbErr = errors.New("connection refused")
	w.check(context.Background())
	if h.statuses[ServiceName] != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("want NOT_SERVING after failed probe, got %v", h.statuses[ServiceName])
	}

	dbErr = nil
	w.check(context.Background())
	if h.statuses[ServiceName] != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("want recovery to SERVING, got %v", h.statuses[ServiceName])
	}
}
