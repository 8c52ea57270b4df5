package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type logCtxKey struct{}

// maxLoggedBody はデバッグログに残すボディの上限 (解答コードは長くなりやすい)
const maxLoggedBody = 4 << 10

// maskedHeaders は値を伏せて出力するヘッダー (小文字)
var maskedHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
}

// statusRecorder はステータスコードと書き込み量を記録します。ボディはデバッグ時のみ保持
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
	body    *bytes.Buffer
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.body != nil && rec.body.Len() < maxLoggedBody {
		rec.body.Write(b)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.written += n
	return n, err
}

// LoggingMiddleware はリクエスト単位のロガーをコンテキストに載せ、開始と完了を記録します。
// Debug レベルではヘッダーとボディも出力します。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(withLogger(r.Context(), reqLogger))

			reqLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqBody []byte
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			if debug {
				if r.Body != nil {
					reqBody, _ = io.ReadAll(r.Body)
					r.Body = io.NopCloser(bytes.NewReader(reqBody))
				}
				rec.body = new(bytes.Buffer)
			}

			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}
			reqLogger.Log(r.Context(), level, "Request completed",
				"route", routePattern(r),
				"status", rec.status,
				"latency_ms", float64(time.Since(start).Microseconds())/1000,
				"bytes_out", rec.written,
			)

			if debug {
				reqLogger.Debug("Request detail", "headers", maskHeaders(r.Header), "body", truncate(reqBody))
				reqLogger.Debug("Response detail", "headers", maskHeaders(rec.Header()), "body", truncate(rec.body.Bytes()))
			}
		})
	}
}

// GetLogger はコンテキストのロガーを返します。無ければ slog.Default()
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// withLogger はロガーを差し替えたコンテキストを返します
func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func maskHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if maskedHeaders[strings.ToLower(k)] {
			out[k] = "[SENSITIVE]"
			continue
		}
		out[k] = strings.Join(v, ", ")
	}
	return out
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
