package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// CloudRunHandler writes one JSON object per record in the Cloud Logging
// structured format: severity, message, time and attributes under data.
type CloudRunHandler struct {
	level slog.Leveler
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
	group string
}

// NewCloudRunHandler logs to stdout, which Cloud Run collects for all severities.
func NewCloudRunHandler(level slog.Level) slog.Handler {
	return NewCloudRunHandlerTo(os.Stdout, level)
}

func NewCloudRunHandlerTo(w io.Writer, level slog.Level) *CloudRunHandler {
	return &CloudRunHandler{level: level, mu: &sync.Mutex{}, out: w}
}

func (h *CloudRunHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *CloudRunHandler) Handle(_ context.Context, r slog.Record) error {
	event := map[string]any{
		"severity": mapSeverity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	data := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		data[a.Key] = attrValue(a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		data[h.key(a.Key)] = attrValue(a.Value)
		return true
	})
	if len(data) > 0 {
		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *CloudRunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	for _, a := range attrs {
		newH.attrs = append(newH.attrs, slog.Attr{Key: h.key(a.Key), Value: a.Value})
	}
	return &newH
}

// WithGroup flattens groups into dotted keys; Cloud Logging has no nesting
// for the data payload we emit.
func (h *CloudRunHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.group = h.key(name)
	return &newH
}

func (h *CloudRunHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

// ---- Helpers ----

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.Any()
}

func mapSeverity(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	default:
		return "DEFAULT"
	}
}
