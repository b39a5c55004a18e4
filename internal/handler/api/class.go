package api

import (
	"net/http"

	reqdto "class-booking/internal/handler/dto/request"
	resdto "class-booking/internal/handler/dto/response"
	"class-booking/internal/handler/httperr"
	"class-booking/internal/handler/middleware"
	"class-booking/internal/usecase/commands"
	"class-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClassHandler struct {
	cmds commands.ClassCommands
	q    queries.ClassQueries
}

func NewClassHandler(cmds commands.ClassCommands, q queries.ClassQueries) *ClassHandler {
	return &ClassHandler{cmds: cmds, q: q}
}

// @Summary List upcoming classes
// @Tags classes
// @Produce json
// @Success 200 {array} resdto.ClassResponse
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	views, err := h.q.ListUpcoming(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to list classes")
		return
	}
	c.JSON(http.StatusOK, resdto.FromClassViews(views))
}

// @Summary Get class
// @Description Class detail with confirmed participants
// @Tags classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} resdto.ClassDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	detail, err := h.q.GetDetail(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to load class")
		return
	}
	c.JSON(http.StatusOK, resdto.FromClassDetail(detail))
}

// @Summary Create class
// @Description Create a class, plus one more per additional date
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClassRequest true "Create class request"
// @Success 201 {object} resdto.CreateClassesResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithCode(c, http.StatusBadRequest, err, "VALIDATION_FAILED", "Invalid request", nil)
		return
	}

	ids, err := h.cmds.CreateClass(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		abortWithUsecaseError(c, err, "Create class failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateClassesResponse{IDs: ids, Count: len(ids)})
}

// @Summary Update class
// @Description Partial update; omitted fields keep their value
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body reqdto.UpdateClassRequest true "Update class request"
// @Success 200 {object} resdto.ClassResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateClassRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithCode(c, http.StatusBadRequest, bindErr, "VALIDATION_FAILED", "Invalid request", nil)
		return
	}

	if err = h.cmds.UpdateClass(c.Request.Context(), id, req.ToInput()); err != nil {
		abortWithUsecaseError(c, err, "Update class failed")
		return
	}
	detail, err := h.q.GetDetail(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to load class")
		return
	}
	c.JSON(http.StatusOK, resdto.FromClassView(detail.Class))
}

// @Summary Delete class
// @Description Bookings of the class are left in place
// @Tags classes
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.DeleteClass(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err, "Delete class failed")
		return
	}
	c.Status(http.StatusNoContent)
}
