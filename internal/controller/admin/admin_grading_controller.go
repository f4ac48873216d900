package admin

import (
	"net/http"

	"github.com/ctrls-academy/exam-platform/internal/controller"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminGradingController struct {
	gradingService service.GradingService
}

func NewAdminGradingController(gradingService service.GradingService) *AdminGradingController {
	return &AdminGradingController{gradingService: gradingService}
}

// ListSubmissions godoc
// @Summary (Admin) List submissions for an exam
// @Description Returns every submission of an exam for the grading view.
// @Tags Admin - Grading
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.SubmissionSummaryResponse "Submissions"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/submissions [get]
func (ctl *AdminGradingController) ListSubmissions(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	examID, ok := controller.ParseIDParam(c, "exam_id")
	if !ok {
		return
	}

	resp, err := ctl.gradingService.ListSubmissions(actx, examID)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GradeSubmission godoc
// @Summary (Admin) Grade answers of a submission
// @Description Applies manual scores and feedback to answers of one submission. Items that fail validation are reported individually; the rest are applied and the totals recomputed.
// @Tags Admin - Grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param grades body dto.GradeSubmissionRequest true "Submission ID and grade items"
// @Success 200 {object} dto.GradingResultResponse "Recomputed totals, with any rejected items"
// @Failure 400 {object} dto.ErrorResponse "Submission still in progress or invalid payload"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /admin/grade [put]
func (ctl *AdminGradingController) GradeSubmission(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GradeSubmission: failed to bind JSON")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctl.gradingService.GradeSubmission(actx, req)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
