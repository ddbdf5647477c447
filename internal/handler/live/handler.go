package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/query"
	"github.com/zhouzirui/f1-api/backend/internal/telemetry"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

const writeWait = 10 * time.Second

// Source 提供推送所需的数据。
type Source interface {
	Drivers() []f1.Driver
	DriversSeason() *int
	Counts() f1.Counts
}

// Handler 实时推送处理器：WebSocket 积分榜与 SSE 心跳。
// 数据集不可变，因此积分榜只在连接建立时推送一次，之后仅发送心跳。
type Handler struct {
	dataset   Source
	heartbeat time.Duration
	upgrader  websocket.Upgrader
}

// New 创建实时推送处理器
func New(dataset Source, heartbeat time.Duration) *Handler {
	return &Handler{
		dataset:   dataset,
		heartbeat: heartbeat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册实时推送路由。这些路由不能经过 ETag 缓冲中间件。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/standings", h.handleStandingsSocket)
	r.Get("/status/stream", h.handleHeartbeatStream)
}

// Frame 是 WebSocket 下发的消息。
type Frame struct {
	Type      string           `json:"type"`
	Season    *int             `json:"season,omitempty"`
	Standings []f1.StandingRow `json:"standings,omitempty"`
	Time      string           `json:"time,omitempty"`
}

const (
	FrameStandings = "standings"
	FrameHeartbeat = "heartbeat"
)

// handleStandingsSocket 推送积分榜快照，然后定期发送心跳直到客户端断开。
func (h *Handler) handleStandingsSocket(w http.ResponseWriter, r *http.Request) {
	logger := telemetry.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	telemetry.LiveConnectionOpened()
	defer telemetry.LiveConnectionClosed()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// 读循环只用于感知断开，客户端消息被丢弃。
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	snapshot := Frame{
		Type:      FrameStandings,
		Season:    h.dataset.DriversSeason(),
		Standings: query.Standings(h.dataset.Drivers()),
	}
	if err := writeFrame(conn, snapshot); err != nil {
		logger.Debug("websocket write failed", "error", err)
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			closeGoingAway(conn, logger)
			return
		case t := <-ticker.C:
			frame := Frame{Type: FrameHeartbeat, Time: t.UTC().Format(time.RFC3339)}
			if err := writeFrame(conn, frame); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame Frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}

func closeGoingAway(conn *websocket.Conn, logger *slog.Logger) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		logger.Debug("websocket close failed", "error", err)
	}
}

// handleHeartbeatStream 以 SSE 形式推送数据集概况与心跳
func (h *Handler) handleHeartbeatStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	ctx := r.Context()
	logger := telemetry.FromContext(ctx)
	logger.Debug("opening heartbeat stream")

	telemetry.LiveConnectionOpened()
	defer telemetry.LiveConnectionClosed()

	if err := utils.SendSSEEvent(w, flusher, "status", map[string]any{
		"ok":     true,
		"counts": h.dataset.Counts(),
	}); err != nil {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("closing heartbeat stream")
			return
		case t := <-ticker.C:
			if err := utils.SendSSEEvent(w, flusher, "heartbeat", map[string]any{
				"ok": true,
				"ts": t.UTC().Format(f1.ISOLayout),
			}); err != nil {
				return
			}
		}
	}
}
