package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Options struct {
	Level      slog.Level
	TimeFormat string
}

var DefaultOptions = Options{
	Level:      slog.LevelInfo,
	TimeFormat: "15:04:05.000",
}

// Err wraps an error into the conventional attribute used across the project.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

type requestIDKey struct{}

// WithRequestID stores a request id in the context so the handler can attach
// it to every record logged during update processing.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type Handler struct {
	opts   Options
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(out io.Writer, opts Options) *Handler {
	return &Handler{
		opts: opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(color.New(color.Faint).Sprint(r.Time.Format(h.opts.TimeFormat)))
	sb.WriteByte(' ')
	sb.WriteString(levelColor(r.Level).Sprintf("%-5s", r.Level.String()))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	if id := RequestID(ctx); id != "" {
		sb.WriteByte(' ')
		sb.WriteString(color.CyanString("requestID=%s", id))
	}

	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Key == "error" && attrs[j].Key != "error" })

	for _, a := range attrs {
		sb.WriteByte(' ')
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		if key == "error" {
			sb.WriteString(color.RedString("%s=%v", key, a.Value))
			continue
		}
		sb.WriteString(color.New(color.Faint).Sprintf("%s=", key))
		sb.WriteString(fmt.Sprintf("%v", a.Value.Resolve()))
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite, color.Faint)
	}
}

var _ slog.Handler = (*Handler)(nil)

// Elapsed is a convenience attr for durations logged after long operations.
func Elapsed(since time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(since).Truncate(time.Millisecond))
}
