package handlers

import (
	"errors"
	"io"
	"net/http"

	"ticket-booking/internal/models"
	"ticket-booking/internal/services"
	"ticket-booking/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidAmount      = "Invalid amount!"
	msgOrderFailed        = "Order creation failed"
	msgPersonCountMissing = "Person count is missing!"
	msgInvalidBooking     = "Invalid booking payload"
	msgSaveFailed         = "Error saving booking"
	msgSavedAndEmailed    = "Booking saved & confirmation email sent!"
	msgSavedEmailFailed   = "Booking saved, but email failed!"
	msgSaved              = "Booking saved successfully!"
	msgFetchFailed        = "Error fetching bookings"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

func (h *BookingHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, utils.MessageResponse(msgInvalidAmount))
		return
	}

	order, err := h.bookingService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, utils.MessageResponse(msgInvalidAmount))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(msgOrderFailed, err.Error()))
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *BookingHandler) SaveBooking(c *gin.Context) {
	// An empty body is an empty booking and fails the person count check.
	var req models.SaveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgInvalidBooking, err.Error()))
		return
	}

	result, err := h.bookingService.SaveBooking(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, utils.MessageResponse(msgPersonCountMissing))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(msgSaveFailed, err.Error()))
		return
	}

	// The booking is committed either way; only the message and status differ.
	if result.NotificationErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":    msgSavedEmailFailed,
			"emailError": result.NotificationErr.Error(),
		})
		return
	}

	if result.Notified {
		c.JSON(http.StatusOK, utils.MessageResponse(msgSavedAndEmailed))
		return
	}
	c.JSON(http.StatusOK, utils.MessageResponse(msgSaved))
}

func (h *BookingHandler) GetBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(msgFetchFailed, err.Error()))
		return
	}

	c.JSON(http.StatusOK, bookings)
}
