package usecase

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/psspowers/underwriting/internal/application/usecase")
