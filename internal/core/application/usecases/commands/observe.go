package commands

import (
	"context"
	"errors"
	"log/slog"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/core/ports"
	"hubflow/internal/metrics"
	"hubflow/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hubflow/commands")

// errNotClaimed means another worker holds or already settled the outbox message or task.
var errNotClaimed = errors.New("not claimed")

// maxConflictRetries bounds how often a transition is re-run after losing an
// optimistic version race. The rerun reloads the order, so a transition that is
// no longer legal ends in a StateError rather than another retry.
const maxConflictRetries = 3

func startSpan(ctx context.Context, name string, orderID kernel.UUID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("order.id", orderID.String())))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// retryOnConflict runs fn until it succeeds, fails for another reason or the
// retries are spent. fn must open its own unit of work.
func retryOnConflict(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for range maxConflictRetries {
		if err = fn(ctx); !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// observeTransition counts a transition attempt. Domain rejections are
// separated from infrastructure failures.
func observeTransition(t order.Transition, err error) {
	result := metrics.ResultOK
	var (
		stateErr *order.StateError
		otpErr   *order.OtpError
		resErr   *hub.ResolutionError
	)
	switch {
	case err == nil:
	case errors.As(err, &stateErr), errors.As(err, &otpErr), errors.As(err, &resErr),
		errors.Is(err, hub.ErrNotHubManager), errors.Is(err, order.ErrNotOrderBuyer):
		result = metrics.ResultRejected
	default:
		result = metrics.ResultError
	}
	metrics.TransitionsTotal.WithLabelValues(t.String(), result).Inc()

	if errors.As(err, &otpErr) {
		metrics.OTPFailuresTotal.WithLabelValues(string(otpErr.Kind)).Inc()
	}
}

// routeTo resolves address to a district and picks its active hub.
func routeTo(
	ctx context.Context,
	logger *slog.Logger,
	hubs ports.HubRepository,
	resolver services.DistrictResolver,
	o *order.Order,
	party hub.Party,
	address kernel.Address,
) (order.HubRef, error) {
	res := resolver.Resolve(address)
	if res.Fallback {
		metrics.DistrictFallbacksTotal.WithLabelValues(string(party)).Inc()
		logger.WarnContext(ctx, "no district matched address, using default district",
			"order_number", o.Number(),
			"party", party,
			"address", address.Text(),
			"district", res.District)
	}

	candidates, err := hubs.ListActiveByDistrict(ctx, res.District)
	if err != nil {
		return order.HubRef{}, err
	}
	_, ref, err := services.NewHubRouter().Route(res, party, candidates)
	return ref, err
}

// settleRelease logs and counts a slot release that found the hub already empty.
// Capacity is advisory, so the transition still commits.
func settleRelease(ctx context.Context, logger *slog.Logger, ref *order.HubRef, released bool, err error) error {
	if err != nil {
		return err
	}
	if !released {
		metrics.HubCounterUnderflowsTotal.WithLabelValues(ref.ID.String()).Inc()
		logger.WarnContext(ctx, "hub current orders already zero on release", "hub_id", ref.ID, "hub", ref.Name)
	}
	return nil
}

// authorizeManager checks that managerID manages the hub at ref. An empty
// managerID means the caller is an admin or the system and skips the check.
func authorizeManager(ctx context.Context, hubs ports.HubRepository, ref *order.HubRef, managerID string) error {
	if managerID == "" {
		return nil
	}
	if ref == nil {
		return hub.ErrNotHubManager
	}
	h, err := hubs.Get(ctx, ref.ID)
	if err != nil {
		return err
	}
	if !h.IsManagedBy(managerID) {
		return hub.ErrNotHubManager
	}
	return nil
}
