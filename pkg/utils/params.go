package utils

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// LookupKey 读取路径参数，解码并转为小写，用于按 slug / teamKey 查找。
func LookupKey(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.ToLower(raw)
}
