package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/railbook/internal/models"
	"github.com/railyatra/railbook/internal/services"
	"github.com/sirupsen/logrus"
)

// BookingHandler serves the passenger-details form and creates bookings
type BookingHandler struct {
	service *services.BookingService
	logger  *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger,
	}
}

// ShowForm handles GET /book/:schedule_id
func (h *BookingHandler) ShowForm(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("schedule_id"))
	if err != nil || scheduleID <= 0 {
		renderErrorPage(c, http.StatusBadRequest, "Invalid schedule",
			"The schedule reference is not valid.", "/")
		return
	}

	// The form reloads with ?passengers=N when travellers are added or removed
	passengerCount := 1
	if countStr := c.Query("passengers"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 {
			passengerCount = parsed
		}
	}
	if passengerCount > models.MaxPassengersPerBooking {
		passengerCount = models.MaxPassengersPerBooking
	}

	journey, err := h.service.ScheduleForBooking(scheduleID)
	if err != nil {
		if _, ok := err.(*models.NotFoundError); ok {
			renderErrorPage(c, http.StatusNotFound, "Schedule not found",
				"The schedule you tried to book does not exist.", "/")
			return
		}

		h.logger.WithError(err).Error("Failed to load schedule for booking")
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
			"We could not open the booking form. Please try again later.", "/")
		return
	}

	slots := make([]int, passengerCount)
	for i := range slots {
		slots[i] = i + 1
	}

	data := gin.H{
		"Journey":         journey,
		"PassengerSlots":  slots,
		"PassengerCount":  passengerCount,
		"SeatPreferences": models.SeatPreferences,
		"EstimatedFare":   fmt.Sprintf("%.2f", journey.Fare*float64(passengerCount)),
	}
	if passengerCount < models.MaxPassengersPerBooking {
		data["AddOneURL"] = fmt.Sprintf("/book/%d?passengers=%d", scheduleID, passengerCount+1)
	}
	if passengerCount > 1 {
		data["RemoveOneURL"] = fmt.Sprintf("/book/%d?passengers=%d", scheduleID, passengerCount-1)
	}

	c.HTML(http.StatusOK, "book.html", data)
}

// Create handles POST /book
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest

	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid booking form")
		renderErrorPage(c, http.StatusBadRequest, "Invalid booking",
			"The booking form was incomplete. Please go back and try again.", "/")
		return
	}

	confirmation, err := h.service.Create(&req)
	if err != nil {
		backURL := fmt.Sprintf("/book/%d", req.ScheduleID)

		switch e := err.(type) {
		case *models.ValidationError:
			h.logger.WithError(err).Warn("Validation error in booking request")
			renderErrorPage(c, http.StatusBadRequest, "Invalid booking", e.Message, backURL)
		case *models.NotFoundError:
			renderErrorPage(c, http.StatusNotFound, "Schedule not found", e.Message, "/")
		case *models.AvailabilityError:
			h.logger.WithFields(logrus.Fields{
				"schedule_id": req.ScheduleID,
				"requested":   e.Requested,
				"available":   e.Available,
			}).Warn("Booking rejected, not enough seats")
			renderErrorPage(c, http.StatusConflict, "Not enough seats",
				fmt.Sprintf("Only %d seat(s) are left on this train, but the booking asked for %d.",
					e.Available, e.Requested),
				backURL)
		default:
			h.logger.WithError(err).Error("Booking creation failed")
			renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
				"We could not complete the booking. Please try again later.", backURL)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/payment?pnr="+confirmation.Booking.PNR)
}
