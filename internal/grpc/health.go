package grpcserver

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the blog API.
const ServiceName = "blogs"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthMonitor keeps a grpc health server in sync with database reachability.
type HealthMonitor struct {
	hs       *health.Server
	db       Pinger
	interval time.Duration
	logger   *slog.Logger
}

func NewHealthMonitor(db Pinger, interval time.Duration, logger *slog.Logger) *HealthMonitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthMonitor{hs: hs, db: db, interval: interval, logger: logger}
}

// Server returns the underlying health service implementation.
func (m *HealthMonitor) Server() *health.Server {
	return m.hs
}

// Check pings the database once and publishes the result for the overall server and ServiceName.
func (m *HealthMonitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := m.db.PingContext(ctx); err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		m.logger.Warn("database ping failed", "error", err)
	}
	m.hs.SetServingStatus("", st)
	m.hs.SetServingStatus(ServiceName, st)
	return st
}

// Run checks immediately and then every interval until ctx is done. On return every
// service reports NOT_SERVING.
func (m *HealthMonitor) Run(ctx context.Context) {
	m.Check(ctx)
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			m.hs.Shutdown()
			return
		case <-t.C:
			m.Check(ctx)
		}
	}
}
