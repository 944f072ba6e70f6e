package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/core/ports"
	"hubflow/internal/metrics"
	"hubflow/internal/pkg/clock"
	"hubflow/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// RelayResult summarizes one relay batch.
type RelayResult struct {
	Processed int
	Failed    int
	Skipped   int
}

// RelaySettings tune the relay.
type RelaySettings struct {
	// MaxAttempts parks a message as failed after this many failed attempts.
	MaxAttempts int
	// Concurrency bounds how many messages are relayed at once.
	Concurrency int
}

// ProcessOutboxCommandHandler turns committed transition events into
// notifications and pickup-code emails.
//
// Each message is relayed in its own transaction: claim it, resolve who must
// hear about it, insert the notifications (duplicates from an earlier partial
// attempt are skipped by the store), send the pickup code email when the event
// carries the order's live code and mark the message processed. A failure rolls that message back,
// records the attempt and leaves the order alone.
type ProcessOutboxCommandHandler struct {
	uowFactory RelayUoWFactory
	admins     ports.AdminDirectory
	mailer     ports.Mailer
	fanout     services.NotificationFanout
	settings   RelaySettings
	clock      clock.Clock
	logger     *slog.Logger
}

func NewProcessOutboxCommandHandler(
	uowFactory RelayUoWFactory,
	admins ports.AdminDirectory,
	mailer ports.Mailer,
	settings RelaySettings,
	clk clock.Clock,
	logger *slog.Logger,
) ProcessOutboxCommandHandler {
	if settings.Concurrency <= 0 {
		settings.Concurrency = 1
	}
	return ProcessOutboxCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		mailer:     mailer,
		fanout:     services.NewNotificationFanout(),
		settings:   settings,
		clock:      clk,
		logger:     logger.With("component", "OutboxRelay"),
	}
}

func (h ProcessOutboxCommandHandler) Handle(ctx context.Context, cmd ProcessOutboxCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	ids, err := h.uowFactory.Create().OutboxRepository().ListPending(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, err
	}
	if len(ids) == 0 {
		return RelayResult{}, nil
	}

	adminIDs, err := h.admins.AdminIDs(ctx)
	if err != nil {
		return RelayResult{}, err
	}

	var processed, failed, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.settings.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			err := h.relayOne(gctx, id, adminIDs)
			switch {
			case errors.Is(err, errNotClaimed):
				skipped.Add(1)
			case err != nil:
				failed.Add(1)
				if recErr := h.recordFailure(gctx, id, err); recErr != nil {
					return recErr
				}
			default:
				processed.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	return RelayResult{
		Processed: int(processed.Load()),
		Failed:    int(failed.Load()),
		Skipped:   int(skipped.Load()),
	}, err
}

func (h ProcessOutboxCommandHandler) relayOne(ctx context.Context, id kernel.UUID, adminIDs []string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	msg, err := uow.OutboxRepository().Claim(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errNotClaimed
	}
	if err != nil {
		return err
	}
	event := msg.Event()

	recipients, err := h.recipients(ctx, uow.HubRepository(), event, adminIDs)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	ns, err := h.fanout.Fanout(event, recipients, now)
	if err != nil {
		return err
	}

	inserted, err := uow.NotificationRepository().AddAll(ctx, ns)
	if err != nil {
		return err
	}

	if event.HasOTP() {
		live, liveErr := h.isLiveCode(ctx, uow.OrderRepository(), event)
		if liveErr != nil {
			return liveErr
		}
		if live {
			if err = h.sendPickupCode(ctx, event); err != nil {
				return err
			}
		} else {
			metrics.PickupMailsTotal.WithLabelValues(metrics.ResultSuperseded).Inc()
			h.logger.InfoContext(ctx, "skipped pickup mail for a replaced code",
				"order_number", event.OrderNumber,
				"transition", event.Transition)
		}
	}

	msg.MarkProcessed(now)
	if err = uow.OutboxRepository().Update(ctx, msg); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, n := range ns {
		metrics.NotificationsCreatedTotal.WithLabelValues(string(n.Recipient().Role)).Inc()
	}
	h.logger.DebugContext(ctx, "relayed transition event",
		"order_number", event.OrderNumber,
		"transition", event.Transition,
		"notifications", inserted)
	return nil
}

func (h ProcessOutboxCommandHandler) recipients(
	ctx context.Context,
	hubs ports.HubRepository,
	event order.Event,
	adminIDs []string,
) (services.Recipients, error) {
	r := services.Recipients{AdminIDs: adminIDs}

	managerOf := func(ref *order.HubRef) (*hub.Manager, error) {
		if ref == nil {
			return nil, nil
		}
		h, err := hubs.Get(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return h.Manager(), nil
	}

	var err error
	if r.SellerHubManager, err = managerOf(event.Snapshot.SellerHub); err != nil {
		return r, err
	}
	if r.BuyerHubManager, err = managerOf(event.Snapshot.BuyerHub); err != nil {
		return r, err
	}
	return r, nil
}

// isLiveCode reports whether the code carried by event is still the order's
// unused code. A resend replaces the code while the message carrying the old one
// may still be pending. The share lock keeps a resend from committing until this
// relay step ends.
func (h ProcessOutboxCommandHandler) isLiveCode(
	ctx context.Context,
	orders ports.OrderRepository,
	event order.Event,
) (bool, error) {
	o, err := orders.GetForShare(ctx, event.OrderID)
	if err != nil {
		return false, err
	}
	otp := o.OTP()
	return otp != nil && !otp.IsUsed() && otp.Code() == event.Snapshot.OTPCode, nil
}

func (h ProcessOutboxCommandHandler) sendPickupCode(ctx context.Context, event order.Event) error {
	s := event.Snapshot
	mail := ports.PickupCodeMail{
		To:          s.BuyerEmail,
		BuyerName:   s.BuyerName,
		OrderNumber: event.OrderNumber,
		Code:        s.OTPCode,
	}
	if s.BuyerHub != nil {
		mail.HubName = s.BuyerHub.Name
	}
	if s.OTPExpiresAt != nil {
		mail.ExpiresAt = *s.OTPExpiresAt
	}

	if err := h.mailer.SendPickupCode(ctx, mail); err != nil {
		metrics.PickupMailsTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	metrics.PickupMailsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return nil
}

// recordFailure stores the failed attempt in a fresh transaction, since the
// relay transaction has been rolled back.
func (h ProcessOutboxCommandHandler) recordFailure(ctx context.Context, id kernel.UUID, cause error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	msg, err := uow.OutboxRepository().Claim(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	parked := msg.RecordFailure(cause, h.settings.MaxAttempts)
	metrics.OutboxFailuresTotal.WithLabelValues(strconv.FormatBool(parked)).Inc()

	logArgs := []any{
		"event_id", id,
		"order_number", msg.Event().OrderNumber,
		"transition", msg.Event().Transition,
		"attempts", msg.Attempts(),
		"error", cause,
	}
	if parked {
		h.logger.ErrorContext(ctx, "giving up on transition event", logArgs...)
	} else {
		h.logger.WarnContext(ctx, "failed to relay transition event", logArgs...)
	}

	if err = uow.OutboxRepository().Update(ctx, msg); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

