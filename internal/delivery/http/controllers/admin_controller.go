package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "landingwaitlist/internal/delivery/http/helpers"
	"landingwaitlist/internal/delivery/http/middleware"
	"landingwaitlist/internal/domain"
	"landingwaitlist/internal/submission"
)

// LoginRequest is the request body for POST /admin/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /admin/login
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// WaitlistPage is the data returned by GET /admin/waitlist.
// swagger:model WaitlistPage
type WaitlistPage struct {
	Items      []*domain.WaitlistRecord `json:"items"`
	Pagination h.PaginationMeta         `json:"pagination"`
}

type AdminController struct {
	Logger   *slog.Logger
	Auth     domain.AdminService
	Waitlist domain.WaitlistService
}

func NewAdminController(logger *slog.Logger, auth domain.AdminService, waitlist domain.WaitlistService) *AdminController {
	return &AdminController{
		Logger:   logger,
		Auth:     auth,
		Waitlist: waitlist,
	}
}

// Login godoc
// @Summary Admin login
// @Description Authenticate the waitlist operator and return a JWT for the admin routes.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse{data=LoginResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Auth.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid email or password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "login failed")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer"})
}

// ListWaitlist godoc
// @Summary List waitlist signups
// @Description Paginated signups in join order. Optional search matches part of the email.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Email substring"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 500)"
// @Success 200 {object} helpers.APIResponse{data=WaitlistPage}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/waitlist [get]
func (c *AdminController) ListWaitlist(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)
	recs, total, err := c.Waitlist.List(r.Context(), h.ParseSearch(r), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to list waitlist")
		return
	}
	if recs == nil {
		recs = []*domain.WaitlistRecord{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, WaitlistPage{
		Items:      recs,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// RemoveFromWaitlist godoc
// @Summary Remove a signup
// @Description Delete the waitlist entry for email.
// @Tags admin
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/waitlist/{email} [delete]
func (c *AdminController) RemoveFromWaitlist(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	err := c.Waitlist.Remove(r.Context(), email)
	switch {
	case err == nil:
		admin, _ := middleware.AdminFromContext(r.Context())
		c.Logger.InfoContext(r.Context(), "waitlist entry removed by admin", "admin", admin)
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, submission.ErrEmptyEmail):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, submission.MsgEmailRequired)
	case errors.Is(err, domain.ErrNotFound):
		h.WriteError(w, h.ErrCodeNotFound, "email is not on the waitlist")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to remove from waitlist")
	}
}
