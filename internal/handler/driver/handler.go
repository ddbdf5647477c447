package driver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/query"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// Source 提供车手数据。
type Source interface {
	Drivers() []f1.Driver
	FindDriver(slug string) (f1.Driver, bool)
	DriversSeason() *int
}

// Handler 车手相关的HTTP处理器
type Handler struct {
	drivers Source
}

// New 创建车手处理器
func New(drivers Source) *Handler {
	return &Handler{drivers: drivers}
}

// RegisterRoutes 注册车手相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/drivers", h.handleListDrivers)
	r.Get("/drivers/{slug}", h.handleGetDriver)
	r.Get("/standings", h.handleStandings)
}

// StandingsResponse 车手积分榜响应
type StandingsResponse struct {
	Season    *int             `json:"season"`
	Standings []f1.StandingRow `json:"standings"`
}

// handleListDrivers 按 team / minPoints / maxPoints 过滤车手
func (h *Handler) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	filter := query.DriverFilterFromQuery(r.URL.Query())
	utils.RespondJSON(w, http.StatusOK, query.Drivers(h.drivers.Drivers(), filter))
}

// handleGetDriver 按 slug 查找车手
func (h *Handler) handleGetDriver(w http.ResponseWriter, r *http.Request) {
	slug := utils.LookupKey(r, "slug")
	driver, ok := h.drivers.FindDriver(slug)
	if !ok {
		utils.RespondNotFound(w, "Driver not found", "slug", slug)
		return
	}
	utils.RespondJSON(w, http.StatusOK, driver)
}

// handleStandings 返回按名次排序的积分榜
func (h *Handler) handleStandings(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, StandingsResponse{
		Season:    h.drivers.DriversSeason(),
		Standings: query.Standings(h.drivers.Drivers()),
	})
}
