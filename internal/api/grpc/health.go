// Package grpc serves the standard gRPC health service for the storefront.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"equishare-storefront/internal/api/grpc/interceptor"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/store"
)

// ServiceName is the health entry tracking catalog reachability. The empty
// name reports the same status for the whole server.
const ServiceName = "equishare.storefront"

type HealthServer struct {
	server  *grpc.Server
	health  *health.Server
	catalog store.CatalogFetcher
}

// NewHealthServer registers the health and reflection services. Status starts
// NOT_SERVING until a catalog probe succeeds.
func NewHealthServer(catalog store.CatalogFetcher) *HealthServer {
	s := grpc.NewServer(grpc.UnaryInterceptor(interceptor.Unary()))
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	reflection.Register(s)

	hs := &HealthServer{server: s, health: h, catalog: catalog}
	hs.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

func (hs *HealthServer) Server() *grpc.Server {
	return hs.server
}

// Probe fetches the catalog once and updates the serving status.
func (hs *HealthServer) Probe(ctx context.Context) bool {
	_, err := hs.catalog.FetchCatalog(ctx)
	if err != nil {
		logger.Warn("Catalog health probe failed", "error", err)
		hs.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}
	hs.set(healthpb.HealthCheckResponse_SERVING)
	return true
}

// Watch probes every interval until ctx is done.
func (hs *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	hs.Probe(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hs.Probe(ctx)
		}
	}
}

// Shutdown marks every service NOT_SERVING and stops the server gracefully.
func (hs *HealthServer) Shutdown() {
	hs.health.Shutdown()
	hs.server.GracefulStop()
}

func (hs *HealthServer) set(st healthpb.HealthCheckResponse_ServingStatus) {
	hs.health.SetServingStatus("", st)
	hs.health.SetServingStatus(ServiceName, st)
}
