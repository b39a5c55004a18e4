package api

import (
	"net/http"

	resdto "class-booking/internal/handler/dto/response"
	"class-booking/internal/handler/httperr"
	"class-booking/internal/handler/middleware"
	"class-booking/internal/usecase/commands"
	"class-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Book a class
// @Description Book a spot in a class, or reactivate a cancelled booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 201 {object} resdto.BookingOutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{classId} [post]
func (h *BookingHandler) Book(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid class id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	outcome, err := h.cmds.AttemptBook(c.Request.Context(), userID, classID)
	if err != nil {
		abortWithUsecaseError(c, err, "Booking failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingOutcome(outcome))
}

// @Summary Cancel a booking
// @Tags bookings
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{classId} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid class id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	if err := h.cmds.CancelBooking(c.Request.Context(), userID, classID); err != nil {
		abortWithUsecaseError(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List my bookings
// @Description Bookings of the authenticated user ordered by class start
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	views, err := h.q.ListForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary List class participants
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 200 {array} resdto.ParticipantResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/class/{classId} [get]
func (h *BookingHandler) Participants(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid class id", nil)
		return
	}
	participants, err := h.q.ListConfirmedForClass(c.Request.Context(), classID)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to list participants")
		return
	}
	c.JSON(http.StatusOK, resdto.FromParticipants(participants))
}

// @Summary Confirmed booking count
// @Tags bookings
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} resdto.ConfirmedCountResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/class/{classId}/count [get]
func (h *BookingHandler) Count(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid class id", nil)
		return
	}
	count, err := h.q.GetConfirmedCount(c.Request.Context(), classID)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to count bookings")
		return
	}
	c.JSON(http.StatusOK, resdto.ConfirmedCountResponse{ClassID: classID, Count: count})
}
