// sentiric-numbering-service/internal/server/grpc/server.go

package grpc

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/sentiric/sentiric-numbering-service/internal/config"
)

const traceHeader = "x-trace-id"

// ServiceName, health servisinde numaralandırma servisinin kaydedildiği isimdir.
const ServiceName = "sentiric.numbering.v1.NumberingService"

var ErrInvalidCA = errors.New("CA sertifikası okunamadı")

// NewServer, mTLS etkinse karşılıklı doğrulamalı, değilse şifresiz bir gRPC sunucusu kurar.
// Health ve reflection servisleri kayıtlı olarak döner; durum NOT_SERVING ile başlar.
func NewServer(cfg config.TLSConfig, log zerolog.Logger) (*grpc.Server, *health.Server, error) {
	creds, err := serverCredentials(cfg)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Enabled() {
		log.Warn().Msg("⚠️ gRPC TLS yapılandırılmadı, sunucu şifresiz dinleyecek.")
	}

	srv := grpc.NewServer(
		grpc.Creds(creds),
		grpc.ChainUnaryInterceptor(UnaryTraceInterceptor(log)),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, hs, nil
}

// SetServing, health durumunu tüm kayıtlı servisler için günceller.
func SetServing(hs *health.Server, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(ServiceName, st)
}

func serverCredentials(cfg config.TLSConfig) (credentials.TransportCredentials, error) {
	if !cfg.Enabled() {
		return insecure.NewCredentials(), nil
	}

	certificate, err := tls.LoadX509KeyPair(cfg.CertPath, cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("sunucu sertifikası yüklenemedi: %w", err)
	}
	caCert, err := os.ReadFile(cfg.CaPath)
	if err != nil {
		return nil, fmt.Errorf("CA dosyası okunamadı: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, ErrInvalidCA
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{certificate},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    caPool,
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// UnaryTraceInterceptor, gelen x-trace-id başlığını context'e taşır ve her çağrıyı loglar.
func UnaryTraceInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = propagateTrace(ctx)
		start := time.Now()

		resp, err := handler(ctx, req)

		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err).Str("code", status.Code(err).String())
		}
		ev.Str("method", info.FullMethod).
			Str("trace_id", TraceID(ctx)).
			Dur("duration", time.Since(start)).
			Msg("gRPC isteği tamamlandı")
		return resp, err
	}
}

// TraceID, context'teki izleme kimliğini döndürür.
func TraceID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "unknown"
	}
	if v := md.Get(traceHeader); len(v) > 0 {
		return v[0]
	}
	return "unknown"
}

func propagateTrace(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}
	if len(md.Get(traceHeader)) == 0 {
		md.Set(traceHeader, "unknown")
	}
	return metadata.NewIncomingContext(ctx, md)
}
