package handlers

import (
	"net/http"

	"github.com/jihan212/BUBT-DX/internal/app"
	"github.com/jihan212/BUBT-DX/internal/http/response"
)

type StatsHandler struct {
	stats *app.StatsService
}

func NewStatsHandler(stats *app.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.stats.Overview(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, overview)
}
