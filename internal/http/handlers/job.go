package handlers

import (
	"net/http"

	"github.com/jihan212/BUBT-DX/internal/app"
	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/job"
	"github.com/jihan212/BUBT-DX/internal/http/middleware"
	"github.com/jihan212/BUBT-DX/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type createJobRequest struct {
	Title               string       `json:"title"`
	Company             string       `json:"company"`
	Description         string       `json:"description"`
	Requirements        string       `json:"requirements"`
	Benefits            string       `json:"benefits"`
	Department          string       `json:"department"`
	Type                string       `json:"type"`
	Location            string       `json:"location"`
	Salary              string       `json:"salary"`
	Skills              []string     `json:"skills"`
	ApplicationDeadline *common.Date `json:"applicationDeadline"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), job.Job{
		Title:               req.Title,
		Company:             req.Company,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Benefits:            req.Benefits,
		Department:          req.Department,
		Type:                job.Type(req.Type),
		Location:            req.Location,
		Salary:              req.Salary,
		Skills:              req.Skills,
		ApplicationDeadline: req.ApplicationDeadline,
		PostedBy:            actorID,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	actorRole, _ := middleware.RoleFromContext(r.Context())
	var recruiterID *common.UUID
	if raw := r.URL.Query().Get("recruiter"); raw != "" {
		parsed, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid recruiter id", map[string]string{"recruiter": "must be a valid id"}))
			return
		}
		recruiterID = &parsed
	}
	jobs, err := h.jobs.List(r.Context(), recruiterID, actorID, actorRole)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	actorRole, _ := middleware.RoleFromContext(r.Context())
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.jobs.Get(r.Context(), id, actorID, actorRole)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, found)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var upd job.Update
	if err := decodeJSON(r, &upd); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), id, upd, actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"message": "Job updated successfully", "job": updated})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), id, actorID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}
