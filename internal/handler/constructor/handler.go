package constructor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/query"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// Source 提供车队积分榜数据。
type Source interface {
	Constructors() []f1.Constructor
	FindConstructor(teamKey string) (f1.Constructor, bool)
	ConstructorsSeason() *int
}

// Handler 车队积分榜的HTTP处理器
type Handler struct {
	constructors Source
}

// New 创建车队积分榜处理器
func New(constructors Source) *Handler {
	return &Handler{constructors: constructors}
}

// RegisterRoutes 注册车队积分榜相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/constructors", h.handleListConstructors)
	r.Get("/constructors/standings", h.handleStandingsAlias)
	r.Get("/constructors/{teamKey}", h.handleGetConstructor)
}

// ListResponse 车队积分榜列表响应
type ListResponse struct {
	Season       *int             `json:"season"`
	Constructors []f1.Constructor `json:"constructors"`
}

func (h *Handler) handleListConstructors(w http.ResponseWriter, r *http.Request) {
	points := query.PointsRangeFromQuery(r.URL.Query())
	utils.RespondJSON(w, http.StatusOK, ListResponse{
		Season:       h.constructors.ConstructorsSeason(),
		Constructors: query.Constructors(h.constructors.Constructors(), points),
	})
}

// handleStandingsAlias 将 /constructors/standings 重定向到规范路径，保留查询参数
func (h *Handler) handleStandingsAlias(w http.ResponseWriter, r *http.Request) {
	target := "/api/constructors"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

func (h *Handler) handleGetConstructor(w http.ResponseWriter, r *http.Request) {
	key := utils.LookupKey(r, "teamKey")
	row, ok := h.constructors.FindConstructor(key)
	if !ok {
		utils.RespondNotFound(w, "Constructor not found", "teamKey", key)
		return
	}
	utils.RespondJSON(w, http.StatusOK, row)
}
