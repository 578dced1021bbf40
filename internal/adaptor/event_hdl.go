package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/dto/request"
	"github.com/sameer-776/seminar-app/internal/usecase"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

type EventHandler struct {
	service usecase.DispatchService
	log     *zap.Logger
}

func NewEventHandler(service usecase.DispatchService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// BookingCreated handles POST /api/events/bookings/created
func (h *EventHandler) BookingCreated(w http.ResponseWriter, r *http.Request) {
	var ev request.BookingCreatedEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(ev.Booking); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Dispatch errors surface as 500 so the trigger host redelivers.
	if err := h.service.BookingCreated(r.Context(), ev.Booking.ToEntity()); err != nil {
		h.log.Error("Failed to dispatch booking-created event",
			zap.Error(err),
			zap.String("booking_id", ev.Booking.ID),
		)
		utils.ResponseInternalError(w, "Failed to process event")
		return
	}

	utils.ResponseSuccess(w, "Event processed", nil)
}

// BookingUpdated handles POST /api/events/bookings/updated
func (h *EventHandler) BookingUpdated(w http.ResponseWriter, r *http.Request) {
	var ev request.BookingUpdatedEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(ev.After); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.BookingUpdated(r.Context(), ev.Before.ToEntity(), ev.After.ToEntity()); err != nil {
		h.log.Error("Failed to dispatch booking-updated event",
			zap.Error(err),
			zap.String("booking_id", ev.After.ID),
		)
		utils.ResponseInternalError(w, "Failed to process event")
		return
	}

	utils.ResponseSuccess(w, "Event processed", nil)
}
