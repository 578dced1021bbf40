package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/internal/data/repository"
)

// DispatchService reacts to booking lifecycle events. It owns no state
// and performs no deduplication: the host redelivers events at least
// once and duplicate notifications are tolerated.
type DispatchService interface {
	BookingCreated(ctx context.Context, after entity.Booking) error
	BookingUpdated(ctx context.Context, before, after entity.Booking) error
}

type dispatchService struct {
	userRepo repository.UserRepository
	notify   NotifyService
	log      *zap.Logger
}

func NewDispatchService(
	userRepo repository.UserRepository,
	notify NotifyService,
	log *zap.Logger,
) DispatchService {
	return &dispatchService{
		userRepo: userRepo,
		notify:   notify,
		log:      log,
	}
}

// BookingCreated notifies every admin about a new pending request.
func (ds *dispatchService) BookingCreated(ctx context.Context, after entity.Booking) error {
	// Bookings created in any other status are pre-resolved; nothing to do.
	if after.Status != entity.BookingStatusPending {
		ds.log.Debug("Booking created in non-pending status, ignoring",
			zap.String("booking_id", after.ID),
			zap.String("status", string(after.Status)),
		)
		return nil
	}

	admins := ds.adminIDs(ctx)
	if len(admins) == 0 {
		return nil
	}

	title := "New Booking Request"
	body := fmt.Sprintf("A new request for %q was submitted by %s.", after.Title, after.RequestedBy)

	ds.log.Info("Dispatching new-booking notifications",
		zap.String("booking_id", after.ID),
		zap.Int("admins", len(admins)),
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, adminID := range admins {
		g.Go(func() error {
			return ds.notify.Notify(gctx, adminID, title, body, &after.ID)
		})
	}

	return g.Wait()
}

// BookingUpdated notifies the requester when the booking status moved to
// a terminal decision. Updates that leave the status unchanged are
// ignored regardless of other field changes.
func (ds *dispatchService) BookingUpdated(ctx context.Context, before, after entity.Booking) error {
	if before.Status == after.Status {
		return nil
	}

	var title, body string

	switch after.Status {
	case entity.BookingStatusApproved:
		title = "Booking Approved!"
		body = fmt.Sprintf("Your request for %q has been approved.", after.Title)
		// Note the re-allocation when the admin moved the booking.
		if before.Hall != after.Hall {
			body += fmt.Sprintf(" It has been re-allocated to %s.", after.Hall)
		}

	case entity.BookingStatusRejected:
		reason := after.RejectionReason
		if reason == "" {
			reason = "Not specified."
		}
		title = "Booking Rejected"
		body = fmt.Sprintf("Your request for %q has been rejected. Reason: %s", after.Title, reason)

	default:
		// Cancellation, re-pending and unmodeled statuses stay silent.
		return nil
	}

	ds.log.Info("Dispatching status-change notification",
		zap.String("booking_id", after.ID),
		zap.String("status", string(after.Status)),
		zap.String("requester_id", after.RequesterID),
	)

	return ds.notify.Notify(ctx, after.RequesterID, title, body, &after.ID)
}

// adminIDs is the admin directory lookup. It fails open: a failed query
// and an empty directory both come back as no recipients, logged
// distinctly, so a directory problem never crashes booking creation.
func (ds *dispatchService) adminIDs(ctx context.Context) []string {
	ids, err := ds.userRepo.FindIDsByRole(ctx, entity.RoleAdmin)
	if err != nil {
		ds.log.Error("Admin directory lookup failed, notifying nobody", zap.Error(err))
		return nil
	}

	if len(ids) == 0 {
		ds.log.Info("No admins registered, nothing to notify")
	}

	return ids
}
