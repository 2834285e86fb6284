package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
	"github.com/delibery/pedidos-api/internal/pkg/metrics"
)

// Terminal events that can complete a request observation.
const (
	terminalFinished = "finished"
	terminalClosed   = "closed"
)

// RecorderConfig configures the Recorder middleware.
type RecorderConfig struct {
	// Skipper excludes requests from recording. Defaults to SkipOperational.
	Skipper echomiddleware.Skipper
	// Sink receives every assembled record. Required.
	Sink ports.MetricSink
	Log  zerolog.Logger
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// SkipOperational skips health probes, the Prometheus endpoint and the API docs.
func SkipOperational(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/health") ||
		p == "/internal/metrics" ||
		strings.HasPrefix(p, "/swagger/")
}

// Recorder produces exactly one domain.MetricRecord per request. The record
// is assembled on whichever happens first: the handler chain returns, or the
// request context is cancelled because the client went away. It must be
// registered before any middleware that can end the request early.
func Recorder(cfg RecorderConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = SkipOperational
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sink == nil {
		panic("echo: recorder middleware requires a metric sink")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			p := newProbe(c, cfg.Now())
			c.Response().Before(func() {
				p.status.Store(int32(c.Response().Status))
			})

			closed := make(chan struct{})
			stop := context.AfterFunc(c.Request().Context(), func() {
				defer close(closed)
				if p.fire() {
					cfg.emit(p.assemble(c, cfg.Now(), true), terminalClosed)
				}
			})

			if err := next(c); err != nil {
				c.Error(err)
			}

			// The close path may still be reading c; it must be done before
			// the context goes back to echo's pool.
			if !stop() {
				<-closed
			}
			if p.fire() {
				cfg.emit(p.assemble(c, cfg.Now(), false), terminalFinished)
			}
			return nil
		}
	}
}

func (cfg RecorderConfig) emit(rec *domain.MetricRecord, terminal string) {
	metrics.RecordsFiredTotal.WithLabelValues(terminal).Inc()
	if !cfg.Sink.Enqueue(rec) {
		cfg.Log.Debug().Str("record_id", rec.ID).Str("path", rec.Path).Msg("metric record not queued")
	}
}

// probe is the per-request observation state. Its latch moves from armed to
// fired exactly once.
type probe struct {
	fired  atomic.Bool
	status atomic.Int32

	start      time.Time
	method     string
	path       string
	remoteAddr string
	userAgent  string
}

func newProbe(c echo.Context, start time.Time) *probe {
	req := c.Request()
	path := req.RequestURI
	if path == "" {
		path = req.URL.RequestURI()
	}
	return &probe{
		start:      start,
		method:     req.Method,
		path:       path,
		remoteAddr: c.RealIP(),
		userAgent:  req.UserAgent(),
	}
}

// fire reports whether the caller won the latch. Later calls return false.
func (p *probe) fire() bool {
	return p.fired.CompareAndSwap(false, true)
}

func (p *probe) assemble(c echo.Context, end time.Time, aborted bool) *domain.MetricRecord {
	subject := domain.UnknownSubject
	if id, ok := IdentityFrom(c); ok && id.SubjectID != "" {
		subject = id.SubjectID
	}

	status := int(p.status.Load())
	switch {
	case status != 0:
	case aborted:
		status = domain.StatusClientClosedRequest
	default:
		// Nothing was written; net/http answers 200 on return.
		status = http.StatusOK
	}

	elapsed := end.Sub(p.start).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}

	return &domain.MetricRecord{
		ID:         uuid.NewString(),
		SubjectID:  subject,
		Method:     p.method,
		Path:       p.path,
		Status:     status,
		ElapsedMs:  elapsed,
		CapturedAt: end.UTC(),
		RemoteAddr: p.remoteAddr,
		UserAgent:  p.userAgent,
		Aborted:    aborted,
	}
}
