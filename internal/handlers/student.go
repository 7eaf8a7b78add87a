package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/service"
)

// StudentHandler handles student HTTP requests.
type StudentHandler struct {
	studentService service.StudentService
	logger         *zap.Logger
}

// NewStudentHandler creates a new StudentHandler instance.
func NewStudentHandler(studentService service.StudentService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		logger:         logger,
	}
}

// Create adds a new student. Admin only, enforced by the route guard.
func (h *StudentHandler) Create(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.studentService.Create(c.Request.Context(), &student); err != nil {
		h.logger.Error("create student failed", zap.Error(err))
		RespondError(c, http.StatusBadRequest, "could not create student")
		return
	}

	c.JSON(http.StatusCreated, student)
}

// List returns all students.
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list students failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not list students")
		return
	}
	c.JSON(http.StatusOK, students)
}

// Get returns one student by id.
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
			return
		}
		h.logger.Error("get student failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not get student")
		return
	}

	c.JSON(http.StatusOK, student)
}

// GetByEmail returns one student by email.
func (h *StudentHandler) GetByEmail(c *gin.Context) {
	student, err := h.studentService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
			return
		}
		h.logger.Error("get student by email failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not get student")
		return
	}

	c.JSON(http.StatusOK, student)
}

// Search returns students matching the keyword.
func (h *StudentHandler) Search(c *gin.Context) {
	students, err := h.studentService.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.logger.Error("search students failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not search students")
		return
	}
	c.JSON(http.StatusOK, students)
}

// ListByUniversity returns students enrolled at a university id.
func (h *StudentHandler) ListByUniversity(c *gin.Context) {
	universityID, err := strconv.ParseInt(c.Param("universityId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid university id")
		return
	}

	students, err := h.studentService.ListByUniversityID(c.Request.Context(), universityID)
	if err != nil {
		h.logger.Error("list students by university failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not list students")
		return
	}
	c.JSON(http.StatusOK, students)
}

// ListByUniversityName returns students enrolled at a named university.
func (h *StudentHandler) ListByUniversityName(c *gin.Context) {
	students, err := h.studentService.ListByUniversityName(c.Request.Context(), c.Param("universityName"))
	if err != nil {
		h.logger.Error("list students by university name failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not list students")
		return
	}
	c.JSON(http.StatusOK, students)
}

// Update replaces a student's fields. Admin only.
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.studentService.Update(c.Request.Context(), id, &student)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
			return
		}
		h.logger.Error("update student failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not update student")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AssociateUniversity enrolls a student at a university. Admin only.
func (h *StudentHandler) AssociateUniversity(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	universityID, err := strconv.ParseInt(c.Param("universityId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid university id")
		return
	}

	student, err := h.studentService.AssociateUniversity(c.Request.Context(), studentID, universityID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
			return
		}
		if errors.Is(err, service.ErrUniversityNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrUniversityNotFound.Error())
			return
		}
		h.logger.Error("associate student with university failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not associate student")
		return
	}

	c.JSON(http.StatusOK, student)
}

// Delete removes a student. Admin only.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			RespondError(c, http.StatusNotFound, service.ErrStudentNotFound.Error())
			return
		}
		h.logger.Error("delete student failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "could not delete student")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
