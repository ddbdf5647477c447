package status

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// ServiceName 出现在根路径响应中。
const ServiceName = "f1-api"

// Endpoints 列出根路径响应中公布的接口。
var Endpoints = []string{
	"/api/drivers", "/api/drivers/:slug", "/api/standings",
	"/api/constructors", "/api/constructors/:teamKey", "/api/constructors/standings",
	"/api/teams", "/api/teams/:teamKey", "/api/teams/summary",
	"/api/races", "/api/races/:grandPrixSlug",
}

// Source 提供数据集概况。
type Source interface {
	Counts() f1.Counts
	Season() int
}

// Handler 根路径与健康检查的HTTP处理器
type Handler struct {
	dataset  Source
	instance string
	now      func() time.Time
}

// New 创建状态处理器；instance 标识当前进程。
func New(dataset Source, instance string) *Handler {
	return &Handler{dataset: dataset, instance: instance, now: time.Now}
}

// RegisterRoutes 注册根路径与 /status
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/status", h.handleStatus)
}

// RootResponse 根路径响应。ok 为 false 表示车手数据未能加载。
type RootResponse struct {
	OK        bool      `json:"ok"`
	Name      string    `json:"name"`
	Season    int       `json:"season"`
	Counts    f1.Counts `json:"counts"`
	Endpoints []string  `json:"endpoints"`
}

// StatusResponse 健康检查响应
type StatusResponse struct {
	OK       bool   `json:"ok"`
	TS       string `json:"ts"`
	Instance string `json:"instance,omitempty"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	counts := h.dataset.Counts()
	utils.RespondJSON(w, http.StatusOK, RootResponse{
		OK:        counts.Drivers > 0,
		Name:      ServiceName,
		Season:    h.dataset.Season(),
		Counts:    counts,
		Endpoints: Endpoints,
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, StatusResponse{
		OK:       true,
		TS:       h.now().UTC().Format(f1.ISOLayout),
		Instance: h.instance,
	})
}
