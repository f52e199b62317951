package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/railbook/internal/models"
	"github.com/railyatra/railbook/internal/services"
	"github.com/sirupsen/logrus"
)

// PaymentHandler serves the payment page and processes card submissions
type PaymentHandler struct {
	payments *services.PaymentService
	bookings *services.BookingService
	logger   *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	payments *services.PaymentService,
	bookings *services.BookingService,
	logger *logrus.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		bookings: bookings,
		logger:   logger,
	}
}

// Page handles GET /payment
func (h *PaymentHandler) Page(c *gin.Context) {
	pnr := c.Query("pnr")
	if pnr == "" {
		renderErrorPage(c, http.StatusBadRequest, "Missing booking",
			"A booking PNR is required to open the payment page.", "/")
		return
	}

	ticket, err := h.bookings.Ticket(c.Request.Context(), pnr)
	if err != nil {
		if _, ok := err.(*models.NotFoundError); ok {
			renderErrorPage(c, http.StatusNotFound, "Booking not found",
				"No booking exists for PNR "+pnr+".", "/")
			return
		}

		h.logger.WithError(err).Error("Failed to load booking for payment")
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
			"We could not open the payment page. Please try again later.", "/")
		return
	}

	// Paid bookings go straight to their ticket
	if ticket.Booking.IsConfirmed() {
		c.Redirect(http.StatusSeeOther, "/ticket/"+pnr)
		return
	}

	c.HTML(http.StatusOK, "payment.html", gin.H{
		"Booking":  ticket.Booking,
		"Journey":  ticket.Journey,
		"Declined": ticket.Booking.Status == models.BookingStatusPaymentFailed,
	})
}

// Pay handles POST /pay
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req models.PaymentRequest

	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid payment form")
		renderErrorPage(c, http.StatusBadRequest, "Invalid payment",
			"The payment form was incomplete. Please go back and try again.", "/")
		return
	}

	result, err := h.payments.Process(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		backURL := "/payment?pnr=" + req.PNR

		switch e := err.(type) {
		case *models.ValidationError:
			h.logger.WithError(err).Warn("Validation error in payment request")
			renderErrorPage(c, http.StatusBadRequest, "Invalid payment", e.Message, backURL)
		case *models.NotFoundError:
			renderErrorPage(c, http.StatusNotFound, "Booking not found", e.Message, "/")
		case *models.PaymentDeclinedError:
			h.renderDeclined(c, e)
		default:
			h.logger.WithError(err).Error("Payment processing failed")
			renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
				"We could not process the payment. Please try again later.", backURL)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/ticket/"+result.Booking.PNR)
}

// renderDeclined re-renders the payment page so the passenger can retry
// with a different card
func (h *PaymentHandler) renderDeclined(c *gin.Context, declined *models.PaymentDeclinedError) {
	ticket, err := h.bookings.Ticket(c.Request.Context(), declined.PNR)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload booking after declined payment")
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
			"The payment was declined and the booking could not be reloaded.", "/")
		return
	}

	c.HTML(http.StatusPaymentRequired, "payment.html", gin.H{
		"Booking":         ticket.Booking,
		"Journey":         ticket.Journey,
		"Declined":        true,
		"DeclinedMessage": declined.Message,
	})
}
