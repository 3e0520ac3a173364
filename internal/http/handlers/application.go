package handlers

import (
	"net/http"
	"time"

	"github.com/jihan212/BUBT-DX/internal/app"
	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/application"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
	"github.com/jihan212/BUBT-DX/internal/http/middleware"
	"github.com/jihan212/BUBT-DX/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	JobID       string `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
}

type updateStatusRequest struct {
	JobID         string `json:"jobId"`
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil {
		key := "apply:student:" + actorID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "application rate limit exceeded", nil))
			return
		}
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"jobId": "jobId must be a valid id"}))
		return
	}
	created, err := h.applications.Apply(r.Context(), jobID, actorID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]any{"message": "Application submitted successfully", "application": created})
}

// List serves both sides of the pipeline: ?student= returns the student's own
// applications, ?job= returns the applicant list for a posting the caller owns.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	actorRole, _ := middleware.RoleFromContext(r.Context())

	if raw := r.URL.Query().Get("student"); raw != "" {
		studentID, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid student id", map[string]string{"student": "must be a valid id"}))
			return
		}
		if studentID != actorID && actorRole != user.RoleAdmin {
			response.Error(w, common.NewError(common.CodeForbidden, "cannot view another student's applications", nil))
			return
		}
		entries, err := h.applications.ListByStudent(r.Context(), studentID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, entries)
		return
	}

	if raw := r.URL.Query().Get("job"); raw != "" {
		jobID, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid job id", map[string]string{"job": "must be a valid id"}))
			return
		}
		applicants, err := h.applications.ListByJob(r.Context(), jobID, actorID, actorRole)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, applicants)
		return
	}

	response.Error(w, common.NewValidationError("missing filter", map[string]string{"query": "either student or job query parameter is required"}))
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	fields := map[string]string{}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		fields["jobId"] = "jobId must be a valid id"
	}
	applicationID, err := common.ParseUUID(req.ApplicationID)
	if err != nil {
		fields["applicationId"] = "applicationId must be a valid id"
	}
	if req.Status == "" {
		fields["status"] = "status is required"
	}
	if len(fields) > 0 {
		response.Error(w, common.NewValidationError("invalid status update", fields))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), jobID, applicationID, application.Status(req.Status), actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"message": "Application status updated", "application": updated})
}
