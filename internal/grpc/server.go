package grpcserver

import (
	"context"
	"database/sql"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"blogApp/internal/config"
)

// StartGRPC starts the gRPC health server on cfg.GRPC.Address and returns a shutdown function.
// Health status follows periodic pings of d.
func StartGRPC(cfg *config.Config, d *sql.DB, logger *slog.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	monitor := NewHealthMonitor(d, cfg.GRPC.HealthInterval, logger)
	srv := NewServer(monitor, logger)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		monitor.Run(monitorCtx)
	}()
	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc server stopped", "error", err)
		}
	}()
	logger.Info("grpc health server listening", "addr", lis.Addr().String())

	return func(ctx context.Context) error {
		stopMonitor()
		<-monitorDone
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

// NewServer builds a gRPC server exposing the health service of monitor, with reflection.
func NewServer(monitor *HealthMonitor, logger *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger(logger)))
	healthpb.RegisterHealthServer(srv, monitor.Server())
	reflection.Register(srv)
	return srv
}

// unaryLogger logs each unary call at debug level, and failures at warn.
func unaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "grpc call",
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
