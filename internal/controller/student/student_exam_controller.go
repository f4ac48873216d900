package student

import (
	"net/http"

	"github.com/ctrls-academy/exam-platform/internal/controller"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/gin-gonic/gin"
)

type StudentExamController struct {
	studentExamService service.StudentExamService
}

func NewStudentExamController(studentExamService service.StudentExamService) *StudentExamController {
	return &StudentExamController{studentExamService: studentExamService}
}

// ListExams godoc
// @Summary (Student) List available and completed exams
// @Description Returns active exams visible to the caller, split into available and completed. Exams outside their scheduling window are excluded from the available list.
// @Tags Student - Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StudentExamListResponse "Available and completed exams"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /student/exams [get]
func (ctl *StudentExamController) ListExams(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}

	resp, err := ctl.studentExamService.ListExams(actx)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListGrades godoc
// @Summary (Student) List grade reports
// @Description Returns the caller's graded submissions with percentage, letter grade and pass flag.
// @Tags Student - Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.GradeReportResponse "Grade reports"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /student/grades [get]
func (ctl *StudentExamController) ListGrades(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}

	resp, err := ctl.studentExamService.ListGrades(actx)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
