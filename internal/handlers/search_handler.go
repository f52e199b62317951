package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/railbook/internal/models"
	"github.com/railyatra/railbook/internal/services"
	"github.com/sirupsen/logrus"
)

// SearchHandler serves the search form and the schedule results page
type SearchHandler struct {
	service *services.SearchService
	logger  *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service *services.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		logger:  logger,
	}
}

// Index handles GET /
func (h *SearchHandler) Index(c *gin.Context) {
	sources, destinations, err := h.service.Stations()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load station lists")
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
			"We could not load the station list. Please try again later.", "/")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Sources":      sources,
		"Destinations": destinations,
	})
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest

	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid search form")
		renderErrorPage(c, http.StatusBadRequest, "Invalid search",
			"Please pick a source, a destination and a travel date.", "/")
		return
	}

	results, err := h.service.Search(&req)
	if err != nil {
		// Check if it's a validation error
		if _, ok := err.(*models.ValidationError); ok {
			h.logger.WithError(err).Warn("Validation error in search request")
			renderErrorPage(c, http.StatusBadRequest, "Invalid search", err.Error(), "/")
			return
		}

		h.logger.WithError(err).Error("Search failed")
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong",
			"We could not search schedules right now. Please try again later.", "/")
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Source":      req.Source,
		"Destination": req.Destination,
		"TravelDate":  req.TravelDate,
		"Results":     results,
	})
}
