//go:build e2e

package booking_test

import (
	"bytes"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"class-booking/internal/domain/user"
	"class-booking/internal/handler/dto/response"
	"class-booking/tests/common/authtest"
	"class-booking/tests/common/dbtest"
	"class-booking/tests/common/httptest"
	"class-booking/tests/e2e"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func bookURL(classID uuid.UUID) string {
	return bookingsURL + "/" + classID.String()
}

func countURL(classID uuid.UUID) string {
	return bookingsURL + "/class/" + classID.String() + "/count"
}

// fireBookings sends one booking request per token at the same time and
// returns the status codes. It avoids require inside goroutines.
func fireBookings(router *gin.Engine, classID uuid.UUID, tokens []string) []int {
	codes := make([]int, len(tokens))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			req := nethttptest.NewRequest(http.MethodPost, bookURL(classID), bytes.NewReader(nil))
			req.Header.Set("Authorization", "Bearer "+token)
			w := nethttptest.NewRecorder()
			<-start
			router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i, token)
	}
	close(start)
	wg.Wait()
	return codes
}

func (s *BookingSuite) TestConcurrentBooking() {
	cases := []struct {
		name     string
		capacity int
		users    int
	}{
		{name: "ten users race for three seats", capacity: 3, users: 10},
		{name: "one seat", capacity: 1, users: 8},
		{name: "more seats than users", capacity: 12, users: 6},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			t := s.T()
			classID := dbtest.CreateTestClass(t, s.DB, "Spin", tc.capacity, time.Now().Add(24*time.Hour))

			tokens := make([]string, tc.users)
			for i := range tokens {
				_, tokens[i] = s.jwt.NewUserToken(t, user.RoleUser)
			}

			codes := fireBookings(s.Router, classID, tokens)

			var created, full int
			for _, code := range codes {
				switch code {
				case http.StatusCreated:
					created++
				case http.StatusBadRequest:
					full++
				default:
					t.Errorf("unexpected status %d", code)
				}
			}
			want := min(tc.capacity, tc.users)
			assert.Equal(t, want, created)
			assert.Equal(t, tc.users-want, full)
			assert.Equal(t, want, dbtest.CountConfirmed(t, s.DB, classID))
			assert.Equal(t, want, dbtest.CountEvents(t, s.DB, classID, "booking.confirmed"))
		})
	}
}

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("book, cancel, rebook reactivates the same row", func() {
		t := s.T()
		classID := dbtest.CreateTestClass(t, s.DB, "Pilates", 2, time.Now().Add(24*time.Hour))
		userID, token := s.jwt.NewUserToken(t, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, token)
		var first response.BookingOutcomeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)
		assert.Equal(t, userID, first.UserID)
		assert.False(t, first.Reactivated)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "ALREADY_BOOKED")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookURL(classID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, bookURL(classID), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "ALREADY_CANCELLED")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, token)
		var second response.BookingOutcomeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &second)
		assert.True(t, second.Reactivated)
		assert.Equal(t, first.BookingID, second.BookingID)

		assert.Equal(t, 1, dbtest.CountConfirmed(t, s.DB, classID))
		assert.Equal(t, 1, dbtest.CountEvents(t, s.DB, classID, "booking.cancelled"))
		assert.Equal(t, 1, dbtest.CountEvents(t, s.DB, classID, "booking.reactivated"))
	})

	s.Run("cancelling a booking that never existed", func() {
		t := s.T()
		classID := dbtest.CreateTestClass(t, s.DB, "Pilates", 2, time.Now().Add(24*time.Hour))
		_, token := s.jwt.NewUserToken(t, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookURL(classID), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "BOOKING_NOT_FOUND")
	})

	s.Run("booking a class that already started", func() {
		t := s.T()
		classID := dbtest.CreateTestClass(t, s.DB, "Dawn Run", 5, time.Now().Add(-time.Minute))
		_, token := s.jwt.NewUserToken(t, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "CLASS_ALREADY_STARTED")
		assert.Equal(t, 0, dbtest.CountEvents(t, s.DB, classID, "booking.confirmed"))
	})

	s.Run("booking a missing class", func() {
		t := s.T()
		_, token := s.jwt.NewUserToken(t, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(uuid.New()), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "CLASS_NOT_FOUND")
	})

	s.Run("anonymous requests are rejected", func() {
		t := s.T()
		classID := dbtest.CreateTestClass(t, s.DB, "Pilates", 2, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, "")
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	s.Run("expired token is rejected", func() {
		t := s.T()
		classID := dbtest.CreateTestClass(t, s.DB, "Pilates", 2, time.Now().Add(24*time.Hour))
		token := s.jwt.CreateExpiredToken(t, uuid.New(), user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

func (s *BookingSuite) TestListingsAndCount() {
	s.Run("my bookings and public count", func() {
		t := s.T()
		yoga := dbtest.CreateTestClass(t, s.DB, "Yoga", 4, time.Now().Add(48*time.Hour))
		boxing := dbtest.CreateTestClass(t, s.DB, "Boxing", 4, time.Now().Add(24*time.Hour))
		_, token := s.jwt.NewUserToken(t, user.RoleUser)
		_, other := s.jwt.NewUserToken(t, user.RoleUser)

		for _, id := range []uuid.UUID{yoga, boxing} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(id), nil, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(yoga), nil, other)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		var mine []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &mine)
		require.Len(t, mine, 2)
		assert.Equal(t, "confirmed", mine[0].Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, countURL(yoga), nil, "")
		var count response.ConfirmedCountResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &count)
		assert.Equal(t, 2, count.Count)
	})

	s.Run("participants of a class", func() {
		t := s.T()
		classID := dbtest.CreateTestClass(t, s.DB, "Yoga", 4, time.Now().Add(48*time.Hour))
		userID, token := s.jwt.NewUserToken(t, user.RoleUser)
		_, viewer := s.jwt.NewUserToken(t, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookURL(classID), nil, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		participantsURL := bookingsURL + "/class/" + classID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, participantsURL, nil, "")
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, participantsURL, nil, viewer)
		var participants []response.ParticipantResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &participants)
		require.Len(t, participants, 1)
		assert.Equal(t, userID, participants[0].UserID)
	})
}
