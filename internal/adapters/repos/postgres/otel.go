package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("idverify/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("idverify/internal/adapters/repos/postgres")
)
