package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/railyatra/railbook/internal/database"
	"github.com/railyatra/railbook/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTicketHandlerTest(t *testing.T) (*TicketHandler, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := testLogger()
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	pgDB := &database.PostgresDB{DB: sqlxDB}
	service := services.NewBookingService(
		database.NewBookingRepository(sqlxDB),
		database.NewScheduleRepository(pgDB),
		database.NewPaymentRepository(sqlxDB, logger),
		logger,
	)

	return NewTicketHandler(service, logger), mock, func() { db.Close() }
}

func TestShowTicket_Confirmed(t *testing.T) {
	handler, mock, cleanup := setupTicketHandlerTest(t)
	defer cleanup()

	pnr := "PNR-20260825-A1B2C3"
	expectTicketQueries(mock, pnr, "confirmed")
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs(7, "success").
		WillReturnRows(sqlmock.NewRows(paymentTestColumns).
			AddRow(4, "7c9e6679-7425-40de-944b-e07fc1f90ae7", 7, 900.00, "card",
				"success", "4242", nil, nil, nil, time.Now()))

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ticket/"+pnr, nil)
	c.Params = gin.Params{{Key: "pnr", Value: pnr}}

	handler.Show(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Booking confirmed")
	assert.Contains(t, body, "PNR "+pnr)
	assert.Contains(t, body, "Shatabdi Express")
	assert.Contains(t, body, "S050")
	assert.Contains(t, body, "S049")
	assert.Contains(t, body, "Total paid")
	assert.Contains(t, body, "**** **** **** 4242")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowTicket_UnpaidRedirectsToPayment(t *testing.T) {
	handler, mock, cleanup := setupTicketHandlerTest(t)
	defer cleanup()

	pnr := "PNR-20260825-A1B2C3"
	expectTicketQueries(mock, pnr, "payment_pending")
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs(7, "success").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ticket/"+pnr, nil)
	c.Params = gin.Params{{Key: "pnr", Value: pnr}}

	handler.Show(c)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/payment?pnr="+pnr, w.Header().Get("Location"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowTicket_NotFound(t *testing.T) {
	handler, mock, cleanup := setupTicketHandlerTest(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE pnr`).
		WithArgs("PNR-20260825-FFFFFF").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ticket/PNR-20260825-FFFFFF", nil)
	c.Params = gin.Params{{Key: "pnr", Value: "PNR-20260825-FFFFFF"}}

	handler.Show(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No booking exists for PNR")

	assert.NoError(t, mock.ExpectationsWereMet())
}
