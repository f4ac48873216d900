package student

import (
	"net/http"

	"github.com/ctrls-academy/exam-platform/internal/controller"
	"github.com/ctrls-academy/exam-platform/internal/service"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// GetReview godoc
// @Summary (Student) Review a finalized submission
// @Description Returns questions, the caller's answers, per-answer scores and feedback, and the overall result. Only the owner (when the exam allows review) or an admin can read it.
// @Tags Student - Review
// @Produce json
// @Security BearerAuth
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.ReviewResponse "Full review"
// @Failure 400 {object} dto.ErrorResponse "Submission not finalized yet"
// @Failure 403 {object} dto.ErrorResponse "Not the owner, or review disabled for this exam"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /student/review/{submission_id} [get]
func (ctl *ReviewController) GetReview(c *gin.Context) {
	actx, ok := controller.MustAuth(c)
	if !ok {
		return
	}
	submissionID, ok := controller.ParseIDParam(c, "submission_id")
	if !ok {
		return
	}

	resp, err := ctl.reviewService.GetReview(actx, submissionID)
	if err != nil {
		controller.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
