package student

import (
	"errors"
	"io"
	"net/http"

	"github.com/ctrls-academy/exam-platform/internal/controller"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// StartAttempt godoc
// @Summary (Student) Start or resume an exam attempt
// @Description Opens the exam-taking session. The first call creates the attempt; later calls resume it with the saved answers and the server-computed remaining time.
// @Tags Student - Attempts
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.AttemptSessionResponse "Attempt session"
// @Failure 403 {object} dto.ErrorResponse "Exam inactive or outside its scheduling window"
// @Failure 404 {object} dto.ErrorResponse "Exam not found or not visible"
// @Failure 409 {object} dto.ErrorResponse "Attempt already finalized"
// @Router /student/exams/{exam_id}/attempts [post]
func (ctl *AttemptController) StartAttempt(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	examID, ok := controller.ParseIDParam(c, "exam_id")
	if !ok {
		return
	}

	resp, err := ctl.attemptService.StartOrResume(actx, examID)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveAnswers godoc
// @Summary (Student) Autosave answers
// @Description Upserts draft answers for an in-progress attempt. Does not change the attempt status.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Submission ID"
// @Param answers body dto.SaveAnswersRequest true "Answers to save"
// @Success 204 "Answers saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already finalized"
// @Router /student/attempts/{attempt_id}/answers [put]
func (ctl *AttemptController) SaveAnswers(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	attemptID, ok := controller.ParseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	var req dto.SaveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("SaveAnswers: failed to bind JSON")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := ctl.attemptService.SaveAnswers(actx, attemptID, req); err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Submit godoc
// @Summary (Student) Submit an attempt
// @Description Finalizes the attempt and runs automatic grading. The time window is re-validated server-side; past the grace period the payload is discarded and the attempt is finalized from autosaved answers.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Submission ID"
// @Param answers body dto.SubmitRequest false "Final answers, may be empty if everything was autosaved"
// @Success 200 {object} dto.SubmitResultResponse "Submission result"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /student/attempts/{attempt_id}/submit [post]
func (ctl *AttemptController) Submit(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	attemptID, ok := controller.ParseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	// An empty body is a valid submit: everything was already autosaved.
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("Submit: failed to bind JSON")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctl.attemptService.Submit(actx, attemptID, req)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
