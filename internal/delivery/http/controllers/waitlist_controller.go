package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "landingwaitlist/internal/delivery/http/helpers"
	"landingwaitlist/internal/domain"
	"landingwaitlist/internal/metrics"
	"landingwaitlist/internal/submission"
)

// JoinRequest is the request body for POST /waitlist.
// The email is checked by the submission controller so the response carries its messages.
type JoinRequest struct {
	Email string `json:"email"`
}

// JoinResponse is the data returned by POST /waitlist.
// swagger:model JoinResponse
type JoinResponse struct {
	Email   string            `json:"email"`
	Status  submission.Status `json:"status" swaggertype:"string" example:"success"`
	Message string            `json:"message"`
}

// CountResponse is the data returned by GET /waitlist/count.
// swagger:model CountResponse
type CountResponse struct {
	Count int `json:"count"`
}

type WaitlistController struct {
	Logger        *slog.Logger
	Service       domain.WaitlistService
	Metrics       *metrics.Metrics
	SubmitTimeout time.Duration
}

func NewWaitlistController(logger *slog.Logger, svc domain.WaitlistService, m *metrics.Metrics, submitTimeout time.Duration) *WaitlistController {
	return &WaitlistController{
		Logger:        logger,
		Service:       svc,
		Metrics:       m,
		SubmitTimeout: submitTimeout,
	}
}

// newSubmission returns a submission controller that persists through the waitlist service.
func (c *WaitlistController) newSubmission() *submission.Controller {
	persist := submission.PersisterFunc(func(ctx context.Context, email string) error {
		_, err := c.Service.Join(ctx, email)
		return err
	})
	return submission.NewController(persist,
		submission.WithTimeout(c.SubmitTimeout),
		submission.WithLogger(c.Logger),
	)
}

// submit runs one full submission lifecycle for email and returns the settled state.
func (c *WaitlistController) submit(ctx context.Context, email string) submission.State {
	sub := c.newSubmission()
	sub.UpdateEmail(email)
	state := sub.Submit(ctx)
	switch state.Failure {
	case submission.FailureEmptyEmail, submission.FailureInvalidFormat:
		c.Metrics.ObserveSubmission(metrics.OutcomeInvalid)
	}
	return state
}

// Join godoc
// @Summary Join the waitlist
// @Description Validate the email and add it to the pre-launch waitlist. The response message is suitable for display next to the form.
// @Tags waitlist
// @Accept json
// @Produce json
// @Param body body JoinRequest true "Signup"
// @Success 201 {object} helpers.APIResponse{data=JoinResponse} "data.message: thank you for joining our waitlist"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (email missing or malformed)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already on the waitlist)"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /waitlist [post]
func (c *WaitlistController) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	state := c.submit(r.Context(), req.Email)
	if state.Status == submission.StatusSuccess {
		h.WriteJSONSuccess(w, http.StatusCreated, JoinResponse{
			Email:   state.Email,
			Status:  state.Status,
			Message: state.Message(),
		})
		return
	}
	h.WriteError(w, failureCode(state.Failure), state.ErrorMessage)
}

// failureCode maps a submission failure to an API error code.
func failureCode(kind submission.FailureKind) string {
	switch kind {
	case submission.FailureEmptyEmail, submission.FailureInvalidFormat:
		return h.ErrCodeBadRequest
	case submission.FailureDuplicate:
		return h.ErrCodeConflict
	default:
		return h.ErrCodeInternalError
	}
}

// Count godoc
// @Summary Waitlist size
// @Description Return the number of emails on the waitlist. The value is cached and refreshed shortly after each signup.
// @Tags waitlist
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=CountResponse}
// @Router /waitlist/count [get]
func (c *WaitlistController) Count(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, CountResponse{Count: c.Service.Count(r.Context())})
}
