package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// JSONHeaders stamps the JSON content type and a public cache lifetime on
// every response.
func JSONHeaders(maxAge time.Duration) func(http.Handler) http.Handler {
	secs := int(maxAge / time.Second)
	cacheControl := fmt.Sprintf("public, max-age=%d, s-maxage=%d", secs, secs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", utils.ContentTypeJSON)
			w.Header().Set("Cache-Control", cacheControl)
			next.ServeHTTP(w, r)
		})
	}
}

// ETag buffers successful GET/HEAD responses, tags them with a hash of the
// body and answers a matching If-None-Match with 304 and no body. Handlers
// behind it must not stream.
func ETag(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			buf := &bufferedWriter{header: w.Header()}
			next.ServeHTTP(buf, r)

			status := buf.statusCode()
			if status < 200 || status >= 300 {
				w.WriteHeader(status)
				_, _ = w.Write(buf.body.Bytes())
				return
			}

			tag := ComputeETag(buf.body.Bytes())
			w.Header().Set("ETag", tag)

			if MatchesETag(r.Header.Get("If-None-Match"), tag) {
				h := w.Header()
				h.Del("Content-Type")
				h.Del("Content-Length")
				w.WriteHeader(http.StatusNotModified)
				return
			}

			w.Header().Set("Content-Length", strconv.Itoa(buf.body.Len()))
			w.WriteHeader(status)
			_, _ = w.Write(buf.body.Bytes())
		})
	}
}

// ComputeETag returns the quoted strong validator for body.
func ComputeETag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}

// MatchesETag evaluates an If-None-Match header against tag. Weak
// comparison is used, lists and "*" are understood, and a bare unquoted
// value is tolerated.
func MatchesETag(header, tag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}

	want := strings.Trim(tag, `"`)
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if strings.Trim(candidate, `"`) == want {
			return true
		}
	}
	return false
}

type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}
