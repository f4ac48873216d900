package admin

import (
	"net/http"

	"github.com/ctrls-academy/exam-platform/internal/controller"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminExamController struct {
	examService service.ExamService
}

func NewAdminExamController(examService service.ExamService) *AdminExamController {
	return &AdminExamController{examService: examService}
}

// CreateExam godoc
// @Summary (Admin) Create a new exam
// @Description Creates an exam in draft status. Questions are attached separately via the questions endpoint.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam body dto.ExamCreateRequest true "Exam metadata"
// @Success 201 {object} dto.ExamResponse "Exam created"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /admin/exams [post]
func (ctl *AdminExamController) CreateExam(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}

	var req dto.ExamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateExam: failed to bind JSON")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctl.examService.CreateExam(actx, req)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateExam godoc
// @Summary (Admin) Update an exam
// @Description Updates exam metadata, scheduling window, status and visibility.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param exam body dto.ExamUpdateRequest true "Updated exam fields"
// @Success 200 {object} dto.ExamResponse "Exam updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id} [put]
func (ctl *AdminExamController) UpdateExam(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	examID, ok := controller.ParseIDParam(c, "exam_id")
	if !ok {
		return
	}

	var req dto.ExamUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("UpdateExam: failed to bind JSON")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctl.examService.UpdateExam(actx, examID, req)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetExam godoc
// @Summary (Admin) Get one exam with its questions
// @Description Returns the exam and its full question set including correct answers.
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse "Exam with questions"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id} [get]
func (ctl *AdminExamController) GetExam(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	examID, ok := controller.ParseIDParam(c, "exam_id")
	if !ok {
		return
	}

	resp, err := ctl.examService.GetExam(actx, examID)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListExams godoc
// @Summary (Admin) List all exams
// @Description Returns every exam with its submission count for the dashboard.
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExamSummaryResponse "Exams"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /admin/exams [get]
func (ctl *AdminExamController) ListExams(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}

	resp, err := ctl.examService.ListExams(actx)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats godoc
// @Summary (Admin) Exam statistics
// @Description Returns aggregate counters for the admin dashboard.
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ExamStatsResponse "Counters"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /admin/exams/stats [get]
func (ctl *AdminExamController) GetStats(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}

	resp, err := ctl.examService.GetStats(actx)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuestions godoc
// @Summary (Admin) Replace an exam's question set
// @Description Replaces all questions of an exam in one call. Order follows the array; rejected while students have the exam open.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param questions body dto.SetQuestionsRequest true "Full ordered question set"
// @Success 200 {object} dto.ExamResponse "Exam with the new question set"
// @Failure 400 {object} dto.ErrorResponse "Invalid question data or attempts in progress"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/questions [put]
func (ctl *AdminExamController) SetQuestions(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	examID, ok := controller.ParseIDParam(c, "exam_id")
	if !ok {
		return
	}

	var req dto.SetQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("SetQuestions: failed to bind JSON")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctl.examService.ReplaceQuestions(actx, examID, req)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
