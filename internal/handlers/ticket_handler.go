package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/railbook/internal/models"
	"github.com/railyatra/railbook/internal/services"
	"github.com/sirupsen/logrus"
)

// TicketHandler serves the confirmed ticket page
type TicketHandler struct {
	service *services.BookingService
	logger  *logrus.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(service *services.BookingService, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		logger:  logger,
	}
}

// Show handles GET /ticket/:pnr
func (h *TicketHandler) Show(c *gin.Context) {
	pnr := c.Param("pnr")

	ticket, err := h.service.Ticket(c.Request.Context(), pnr)
	if err != nil {
		if _, ok := err.(*models.NotFoundError); ok {
			renderErrorPage(c, http.StatusNotFound, "Ticket not found",
				"No booking exists for PNR "+pnr+".", "/")
			return
		}

		h.logger.WithError(err).Error("Failed to load ticket")
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
			"We could not load the ticket. Please try again later.", "/")
		return
	}

	// Unpaid bookings bounce back to the payment page
	if !ticket.Booking.IsConfirmed() {
		c.Redirect(http.StatusSeeOther, "/payment?pnr="+pnr)
		return
	}

	c.HTML(http.StatusOK, "ticket.html", gin.H{
		"Booking":    ticket.Booking,
		"Journey":    ticket.Journey,
		"Passengers": ticket.Passengers,
		"Payment":    ticket.Payment,
	})
}
