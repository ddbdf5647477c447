package team

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/query"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// Source 提供车队索引数据。
type Source interface {
	Teams() []f1.Team
	FindTeam(teamKey string) (f1.Team, bool)
	Season() int
}

// Handler 车队索引的HTTP处理器
type Handler struct {
	teams Source
}

// New 创建车队索引处理器
func New(teams Source) *Handler {
	return &Handler{teams: teams}
}

// RegisterRoutes 注册车队索引相关的路由。/teams/summary 是静态路径，优先于 {teamKey}。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/teams", h.handleListTeams)
	r.Get("/teams/summary", h.handleSummary)
	r.Get("/teams/{teamKey}", h.handleGetTeam)
}

// ListResponse 车队列表响应
type ListResponse struct {
	Season int       `json:"season"`
	Teams  []f1.Team `json:"teams"`
}

// SummaryResponse 车队赛季概要响应
type SummaryResponse struct {
	Season int              `json:"season"`
	Teams  []f1.TeamSummary `json:"teams"`
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, ListResponse{
		Season: h.teams.Season(),
		Teams:  query.Teams(h.teams.Teams(), r.URL.Query().Get("q")),
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	season := h.teams.Season()
	utils.RespondJSON(w, http.StatusOK, SummaryResponse{
		Season: season,
		Teams:  query.TeamSummaries(h.teams.Teams(), season),
	})
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	key := utils.LookupKey(r, "teamKey")
	t, ok := h.teams.FindTeam(key)
	if !ok {
		utils.RespondNotFound(w, "Team not found", "teamKey", key)
		return
	}
	utils.RespondJSON(w, http.StatusOK, t)
}
