package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/service"
)

// UniversityHandler handles university HTTP requests.
type UniversityHandler struct {
	universityService service.UniversityService
	logger            *zap.Logger
}

// NewUniversityHandler creates a new UniversityHandler instance.
func NewUniversityHandler(universityService service.UniversityService, logger *zap.Logger) *UniversityHandler {
	return &UniversityHandler{
		universityService: universityService,
		logger:            logger,
	}
}

// Create adds a new university. Admin only, enforced by the route guard.
func (h *UniversityHandler) Create(c *gin.Context) {
	var university models.University
	if err := c.ShouldBindJSON(&university); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.universityService.Create(c.Request.Context(), &university); err != nil {
		h.logger.Error("create university failed", zap.Error(err))
		RespondError(c, http.StatusBadRequest, "could not create university")
		return
	}

	c.JSON(http.StatusCreated, university)
}

// List returns all universities.
func (h *UniversityHandler) List(c *gin.Context) {
	universities, err := h.universityService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list universities failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not list universities")
		return
	}
	c.JSON(http.StatusOK, universities)
}

// Get returns one university by id.
func (h *UniversityHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	university, err := h.universityService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUniversityNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrUniversityNotFound.Error())
			return
		}
		h.logger.Error("get university failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not get university")
		return
	}

	c.JSON(http.StatusOK, university)
}

// Search returns universities whose name contains the query.
func (h *UniversityHandler) Search(c *gin.Context) {
	universities, err := h.universityService.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.logger.Error("search universities failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not search universities")
		return
	}
	c.JSON(http.StatusOK, universities)
}

// ListByLocation returns universities in a location.
func (h *UniversityHandler) ListByLocation(c *gin.Context) {
	universities, err := h.universityService.ListByLocation(c.Request.Context(), c.Param("location"))
	if err != nil {
		h.logger.Error("list universities by location failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not list universities")
		return
	}
	c.JSON(http.StatusOK, universities)
}

// Update replaces a university's fields. Admin only.
func (h *UniversityHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var university models.University
	if err := c.ShouldBindJSON(&university); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.universityService.Update(c.Request.Context(), id, &university)
	if err != nil {
		if errors.Is(err, service.ErrUniversityNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrUniversityNotFound.Error())
			return
		}
		h.logger.Error("update university failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not update university")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes a university. Admin only.
func (h *UniversityHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.universityService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUniversityNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrUniversityNotFound.Error())
			return
		}
		h.logger.Error("delete university failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not delete university")
		return
	}

	c.Status(http.StatusNoContent)
}
