package race

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/query"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// Source 提供分站赛数据。
type Source interface {
	Races() []f1.Race
	FindRace(grandPrixSlug string) (f1.Race, bool)
}

// Handler 分站赛的HTTP处理器
type Handler struct {
	races Source
}

// New 创建分站赛处理器
func New(races Source) *Handler {
	return &Handler{races: races}
}

// RegisterRoutes 注册分站赛相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/races", h.handleListRaces)
	r.Get("/races/{grandPrixSlug}", h.handleGetRace)
}

// handleListRaces 支持 q / team / winner / from / to / sort / order
func (h *Handler) handleListRaces(w http.ResponseWriter, r *http.Request) {
	q := query.RaceQueryFromQuery(r.URL.Query())
	utils.RespondJSON(w, http.StatusOK, query.Races(h.races.Races(), q))
}

func (h *Handler) handleGetRace(w http.ResponseWriter, r *http.Request) {
	key := utils.LookupKey(r, "grandPrixSlug")
	row, ok := h.races.FindRace(key)
	if !ok {
		utils.RespondNotFound(w, "Race not found", "grandPrixSlug", key)
		return
	}
	utils.RespondJSON(w, http.StatusOK, row)
}
