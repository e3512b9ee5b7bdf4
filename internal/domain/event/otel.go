package event

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
)

// Otel carries trace context across the outbox so consumers continue the
// producing request's trace. The carrier must survive JSON marshaling, the
// outbox stores events as JSON payloads.
type Otel struct {
	Carrier map[string]string `json:"otel_carrier,omitempty"`
}

func (o *Otel) Propagate(ctx context.Context) {
	if o.Carrier == nil {
		o.Carrier = make(map[string]string)
	}

	tcPropagator := propagation.TraceContext{}
	bgPropagator := propagation.Baggage{}

	tcPropagator.Inject(ctx, propagation.MapCarrier(o.Carrier))
	bgPropagator.Inject(ctx, propagation.MapCarrier(o.Carrier))
}

func (o *Otel) Extract() context.Context {
	if o.Carrier == nil {
		return context.Background()
	}

	tcPropagator := propagation.TraceContext{}
	bgPropagator := propagation.Baggage{}

	ctx := context.Background()
	ctx = tcPropagator.Extract(ctx, propagation.MapCarrier(o.Carrier))
	ctx = bgPropagator.Extract(ctx, propagation.MapCarrier(o.Carrier))

	return ctx
}
