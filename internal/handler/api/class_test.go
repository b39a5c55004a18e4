//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"class-booking/internal/domain/booking"
	"class-booking/internal/domain/class"
	"class-booking/internal/domain/user"
	"class-booking/internal/handler/api"
	resdto "class-booking/internal/handler/dto/response"
	"class-booking/internal/pkg/errs"
	"class-booking/internal/usecase/commands"
	"class-booking/internal/usecase/queries"
	"class-booking/tests/common/builder"
	"class-booking/tests/common/httptest"
	"class-booking/tests/common/testutil"
	commandsmock "class-booking/tests/mock/commands"
	queriesmock "class-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ClassHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockClassCommands
	mockQueries  *queriesmock.MockClassQueries
	handler      *api.ClassHandler
	adminID      uuid.UUID
}

func (s *ClassHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockClassCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockClassQueries(s.mockCtrl)
	s.handler = api.NewClassHandler(s.mockCommands, s.mockQueries)
	s.adminID = uuid.New()

	auth := fakeAuth(s.adminID, user.RoleAdmin)
	s.router.GET("/classes", s.handler.List)
	s.router.GET("/classes/:id", s.handler.Get)
	s.router.POST("/classes", auth, s.handler.Create)
	s.router.PUT("/classes/:id", auth, s.handler.Update)
	s.router.DELETE("/classes/:id", auth, s.handler.Delete)
}

func (s *ClassHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestClassHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClassHandlerTestSuite))
}

type testCaseClass struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ClassHandlerTestSuite) TestCreate() {
	url := "/classes"
	reqBody := builder.NewClassBuilder().BuildCreateRequestDTO()
	ids := []uuid.UUID{uuid.New()}

	s.Run("success: returns 201 with created ids", func() {
		s.mockCommands.EXPECT().CreateClass(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateClassInput) ([]uuid.UUID, error) {
				s.Require().NotNil(in.CreatedBy)
				s.Equal(s.adminID, *in.CreatedBy)
				s.Equal(reqBody.Title, in.Title)
				return ids, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CreateClassesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(ids, body.IDs)
		s.Equal(1, body.Count)
	})

	validation := []testCaseClass{
		{name: "capacity boundary OK (1)", mutate: testutil.Field("maxCapacity", 1), expectCode: http.StatusCreated},
		{name: "capacity invalid (0)", mutate: testutil.Field("maxCapacity", 0), expectCode: http.StatusBadRequest},
		{name: "duration boundary OK (15)", mutate: testutil.Field("durationMinutes", 15), expectCode: http.StatusCreated},
		{name: "duration invalid (14)", mutate: testutil.Field("durationMinutes", 14), expectCode: http.StatusBadRequest},
		{name: "title length OK (255 chars)", mutate: testutil.Field("title", strings.Repeat("a", 255)), expectCode: http.StatusCreated},
		{name: "title length invalid (256 chars)", mutate: testutil.Field("title", strings.Repeat("a", 256)), expectCode: http.StatusBadRequest},
		{name: "missing field: title", mutate: testutil.Field("title", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: maxCapacity", mutate: testutil.Field("maxCapacity", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: scheduledAt", mutate: testutil.Field("scheduledAt", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: durationMinutes (defaulted)", mutate: testutil.Field("durationMinutes", nil), expectCode: http.StatusCreated},
	}
	for _, tc := range validation {
		s.Run(tc.name, func() {
			if tc.expectCode == http.StatusCreated {
				s.mockCommands.EXPECT().CreateClass(gomock.Any(), gomock.Any()).Return(ids, nil)
			}
			requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

			s.Equal(tc.expectCode, rec.Code, rec.Body.String())
		})
	}

	s.Run("error: domain validation becomes 400", func() {
		s.mockCommands.EXPECT().CreateClass(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(class.ErrDuplicateOccurrence, errs.ErrDomainValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_FAILED")
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *ClassHandlerTestSuite) TestUpdate() {
	cb := builder.NewClassBuilder()
	url := "/classes/" + cb.ID.String()

	s.Run("success: returns the updated class", func() {
		s.mockCommands.EXPECT().UpdateClass(gomock.Any(), cb.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.UpdateClassInput) error {
				s.Require().NotNil(in.MaxCapacity)
				s.Equal(12, *in.MaxCapacity)
				s.Nil(in.Title)
				return nil
			})
		s.mockQueries.EXPECT().GetDetail(gomock.Any(), cb.ID).
			Return(&queries.ClassDetail{Class: cb.BuildView(), Participants: []*queries.ParticipantView{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"maxCapacity": 12}, "bearer-token")

		var body resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(cb.ID, body.ID)
	})

	s.Run("error: capacity below confirmed", func() {
		s.mockCommands.EXPECT().UpdateClass(gomock.Any(), cb.ID, gomock.Any()).Return(booking.ErrCapacityBelowConfirmed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"maxCapacity": 1}, "bearer-token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "CAPACITY_BELOW_CONFIRMED")
	})

	s.Run("error: binding rejects capacity 0", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"maxCapacity": 0}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ClassHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().DeleteClass(gomock.Any(), id).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/classes/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for a missing class", func() {
		s.mockCommands.EXPECT().DeleteClass(gomock.Any(), id).Return(booking.ErrClassNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/classes/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "CLASS_NOT_FOUND")
	})
}

// ================================================================================
// Read endpoints
// ================================================================================

func (s *ClassHandlerTestSuite) TestList() {
	full := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) {
		b.Capacity = 3
		b.BookedCount = 3
	}).BuildView()
	open := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) {
		b.Capacity = 3
		b.BookedCount = 1
		b.ScheduledAt = b.ScheduledAt.Add(time.Hour)
	}).BuildView()
	s.mockQueries.EXPECT().ListUpcoming(gomock.Any()).Return([]*queries.ClassView{full, open}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes", nil, "")

	var body []resdto.ClassResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal(0, body[0].AvailableSpots)
	s.Equal(3, body[0].BookedCount)
	s.Equal(2, body[1].AvailableSpots)
}

func (s *ClassHandlerTestSuite) TestGet() {
	cb := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) { b.BookedCount = 1 })
	p := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ClassID = cb.ID }).BuildParticipant()

	s.Run("success: class with participants", func() {
		s.mockQueries.EXPECT().GetDetail(gomock.Any(), cb.ID).
			Return(&queries.ClassDetail{Class: cb.BuildView(), Participants: []*queries.ParticipantView{p}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes/"+cb.ID.String(), nil, "")

		var body resdto.ClassDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(cb.ID, body.ID)
		s.Equal(cb.Title, body.Title)
		s.Equal(cb.Capacity-1, body.AvailableSpots)
		s.Require().Len(body.Participants, 1)
		s.Equal(p.UserID, body.Participants[0].UserID)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
