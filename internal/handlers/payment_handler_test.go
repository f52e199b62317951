package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/railyatra/railbook/internal/database"
	"github.com/railyatra/railbook/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBrowserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

func setupPaymentHandlerTest(t *testing.T) (*PaymentHandler, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := testLogger()
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	pgDB := &database.PostgresDB{DB: sqlxDB}

	bookingRepo := database.NewBookingRepository(sqlxDB)
	paymentRepo := database.NewPaymentRepository(sqlxDB, logger)
	bookingService := services.NewBookingService(
		bookingRepo,
		database.NewScheduleRepository(pgDB),
		paymentRepo,
		logger,
	)
	paymentService := services.NewPaymentService(bookingRepo, paymentRepo, logger)

	return NewPaymentHandler(paymentService, bookingService, logger), mock, func() { db.Close() }
}

func testBookingRow(id int, pnr string, totalFare float64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingTestColumns).
		AddRow(id, pnr, 1, 2, totalFare, status, now, now)
}

// expectTicketQueries covers the booking, schedule and passenger lookups
// behind the payment and ticket pages
func expectTicketQueries(mock sqlmock.Sqlmock, pnr, status string) {
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE pnr`).
		WithArgs(pnr).
		WillReturnRows(testBookingRow(7, pnr, 900.00, status))
	mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
		WithArgs(1).
		WillReturnRows(testScheduleRow(1, 48, 450.00))
	mock.ExpectQuery(`SELECT (.+) FROM passengers`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(passengerTestColumns).
			AddRow(11, 7, "Asha Verma", 34, "window", "S050").
			AddRow(12, 7, "Rohan Verma", 36, "none", "S049"))
}

func TestPaymentPage_PendingBooking(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	pnr := "PNR-20260825-A1B2C3"
	expectTicketQueries(mock, pnr, "payment_pending")
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs(7, "success").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment?pnr="+pnr, nil)

	handler.Page(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, pnr)
	assert.Contains(t, body, "Amount due")
	assert.Contains(t, body, "900.00")
	assert.NotContains(t, body, "Your seats are still held")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentPage_ShowsDeclinedBanner(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	pnr := "PNR-20260825-A1B2C3"
	expectTicketQueries(mock, pnr, "payment_failed")
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs(7, "success").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment?pnr="+pnr, nil)

	handler.Page(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your seats are still held")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentPage_ConfirmedRedirectsToTicket(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
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
	c.Request = httptest.NewRequest(http.MethodGet, "/payment?pnr="+pnr, nil)

	handler.Page(c)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ticket/"+pnr, w.Header().Get("Location"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentPage_MissingPNR(t *testing.T) {
	handler, _, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment", nil)

	handler.Page(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "A booking PNR is required")
}

func TestPaymentPage_UnknownPNR(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE pnr`).
		WithArgs("PNR-20260825-FFFFFF").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment?pnr=PNR-20260825-FFFFFF", nil)

	handler.Page(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No booking exists for PNR")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPay_ApprovedRedirectsToTicket(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	pnr := "PNR-20260825-A1B2C3"

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE pnr`).
		WithArgs(pnr).
		WillReturnRows(testBookingRow(7, pnr, 900.00, "payment_pending"))
	mock.ExpectExec(`UPDATE bookings SET status`).
		WithArgs("confirmed", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(sqlmock.AnyArg(), 7, 900.00, "card", "success",
			"4242", "192.0.2.1", testBrowserUA, "desktop", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = postFormRequest("/pay", url.Values{
		"pnr":         {pnr},
		"card_holder": {"Asha Verma"},
		"card_number": {"4242 4242 4242 4242"},
	})
	c.Request.Header.Set("User-Agent", testBrowserUA)

	handler.Pay(c)
	// The engine flushes deferred status writes after the handler chain;
	// a body-less POST redirect needs the same flush when invoked directly
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ticket/"+pnr, w.Header().Get("Location"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPay_DeclinedRendersRetryPage(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	pnr := "PNR-20260825-A1B2C3"

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE pnr`).
		WithArgs(pnr).
		WillReturnRows(testBookingRow(7, pnr, 900.00, "payment_pending"))
	mock.ExpectExec(`UPDATE bookings SET status`).
		WithArgs("payment_failed", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(sqlmock.AnyArg(), 7, 900.00, "card", "failed",
			"1117", "192.0.2.1", testBrowserUA, "desktop", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	// The declined page reloads the booking to re-render the payment form
	expectTicketQueries(mock, pnr, "payment_failed")
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs(7, "success").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = postFormRequest("/pay", url.Values{
		"pnr":         {pnr},
		"card_number": {"4000 0000 0000 1117"},
	})
	c.Request.Header.Set("User-Agent", testBrowserUA)

	handler.Pay(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(),
		"Payment failed. Try another card number ending in an even digit.")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPay_MalformedCard(t *testing.T) {
	handler, mock, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = postFormRequest("/pay", url.Values{
		"pnr":         {"PNR-20260825-A1B2C3"},
		"card_number": {"42ab-cdef"},
	})

	handler.Pay(c)

	// Rejected before any state changes
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "card number can only contain digits")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPay_IncompleteForm(t *testing.T) {
	handler, _, cleanup := setupPaymentHandlerTest(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c := newPageContext(w)
	c.Request = postFormRequest("/pay", url.Values{
		"pnr": {"PNR-20260825-A1B2C3"},
	})

	handler.Pay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "The payment form was incomplete.")
}
