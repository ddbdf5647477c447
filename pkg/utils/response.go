package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ContentTypeJSON 是所有 JSON 响应使用的 Content-Type。
const ContentTypeJSON = "application/json; charset=utf-8"

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondNotFound 发送带有缺失键的 404 响应，例如 {"error": "Driver not found", "slug": "x"}。
func RespondNotFound(w http.ResponseWriter, message, keyName, key string) {
	RespondJSON(w, http.StatusNotFound, map[string]string{
		"error": message,
		keyName: key,
	})
}
