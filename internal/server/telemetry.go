// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-balloon-factory/pkg/common"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TelemetryConfig selects how spans are exported.
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	ID          int64
}

// SetupTelemetry installs the B3 and W3C propagators and, when enabled, a
// tracer provider exporting to Zipkin. The returned function flushes
// pending spans.
func SetupTelemetry(ctx context.Context, cfg TelemetryConfig) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			b3.New(),
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	if !cfg.Enabled {
		logrus.Info("tracing disabled; spans are not exported")
		return func(context.Context) error { return nil }, nil
	}

	tracerProvider, err := common.NewTracerProvider(cfg.ServiceName, cfg.Environment, cfg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}
	otel.SetTracerProvider(tracerProvider)
	logrus.Infof("set tracer provider: (name: %s environment: %s id: %d)", cfg.ServiceName, cfg.Environment, cfg.ID)

	return func(ctx context.Context) error {
		logrus.Info("shutting down telemetry...")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		logrus.Info("telemetry stopped")
		return nil
	}, nil
}
