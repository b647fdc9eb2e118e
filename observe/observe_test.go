package observe

import (
	"context"
	"errors"
	"testing"
)

// TestConfigValidate_Valid verifies that a fully populated config passes.
func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName:    "test-service",
		Version:        "1.0.0",
		TraceExporter:  "stdout",
		TraceSamplePct: 1.0,
		MetricExporter: "stdout",
		LogLevel:       "info",
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestConfigValidate_Disabled verifies that only the service name is
// required when every concern is left empty.
func TestConfigValidate_Disabled(t *testing.T) {
	cfg := Config{ServiceName: "test-service"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestConfigValidate_MissingServiceName verifies that empty ServiceName fails.
func TestConfigValidate_MissingServiceName(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("expected ErrMissingServiceName, got: %v", err)
	}
}

// TestConfigValidate_Rejections exercises each invalid knob.
func TestConfigValidate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "unknown trace exporter",
			cfg:  Config{ServiceName: "s", TraceExporter: "unknown"},
			want: ErrInvalidTracingExporter,
		},
		{
			name: "unknown metric exporter",
			cfg:  Config{ServiceName: "s", MetricExporter: "badvalue"},
			want: ErrInvalidMetricsExporter,
		},
		{
			name: "sample pct above one",
			cfg:  Config{ServiceName: "s", TraceExporter: "stdout", TraceSamplePct: 1.5},
			want: ErrInvalidSamplePct,
		},
		{
			name: "negative sample pct",
			cfg:  Config{ServiceName: "s", TraceSamplePct: -0.1},
			want: ErrInvalidSamplePct,
		},
		{
			name: "unknown log level",
			cfg:  Config{ServiceName: "s", LogLevel: "verbose"},
			want: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestBootstrap_Disabled verifies a fully disabled config still yields a
// Telemetry that can be wired into an aggregator.
func TestBootstrap_Disabled(t *testing.T) {
	tel, err := Bootstrap(context.Background(), Config{ServiceName: "observe-test"})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if tel.Logger == nil {
		t.Fatal("expected non-nil logger")
	}
	if tel.Tracer == nil {
		t.Fatal("expected non-nil tracer")
	}
	if tel.Meter == nil {
		t.Fatal("expected non-nil meter")
	}

	// The no-op collaborators must be safe to use.
	tel.Logger.Info(context.Background(), "dropped")
	_, span := tel.Tracer.StartSpan(context.Background(), CheckMeta{Name: "noop"})
	tel.Tracer.EndSpan(span, nil)

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

// TestBootstrap_InvalidConfig verifies validation gates the bootstrap.
func TestBootstrap_InvalidConfig(t *testing.T) {
	_, err := Bootstrap(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("expected ErrMissingServiceName, got: %v", err)
	}
}

// TestBootstrap_LoggingOnly verifies a single enabled concern leaves the
// others as no-ops.
func TestBootstrap_LoggingOnly(t *testing.T) {
	tel, err := Bootstrap(context.Background(), Config{
		ServiceName: "observe-test",
		LogLevel:    "debug",
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer tel.Shutdown(context.Background())

	if _, ok := tel.Logger.(*structuredLogger); !ok {
		t.Errorf("Logger = %T, want *structuredLogger", tel.Logger)
	}
	if _, ok := tel.Tracer.(*noopTracer); !ok {
		t.Errorf("Tracer = %T, want *noopTracer", tel.Tracer)
	}
}

// TestNopLogger verifies the nop logger is safe to use.
func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info(context.Background(), "dropped")
	logger.Debug(context.Background(), "dropped")

	if logger.WithCheck(CheckMeta{Name: "noop"}) == nil {
		t.Fatal("WithCheck should return non-nil logger")
	}
}
