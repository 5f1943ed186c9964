// Package preview serves the rendered site locally and rebuilds it when the
// configuration or content sources change.
package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/hugo"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
	"git.home.luguber.info/chenyuan/blogsite/internal/metrics"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Loader resolves the configuration for each rebuild.
type Loader func() (*config.Config, error)

// Options configures a preview Server.
type Options struct {
	Addr       string
	ConfigPath string // watched when set
	SourceDir  string
	Debounce   time.Duration
	Recorder   metrics.Recorder // /metrics is served when it is a metrics.Exporter
	Observers  []hugo.BuildObserver

	// Renderer overrides hugo; when nil, hugo runs with --baseURL set to the
	// local address.
	Renderer hugo.Renderer
}

// Server rebuilds and serves the site.
type Server struct {
	opts   Options
	load   Loader
	hub    *LiveReloadHub
	status buildStatus
}

// New creates a preview server.
func New(load Loader, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.SourceDir == "" {
		opts.SourceDir = "."
	}
	return &Server{opts: opts, load: load, hub: NewLiveReloadHub()}
}

// buildStatus tracks the latest build for serving and /healthz.
type buildStatus struct {
	mu        sync.RWMutex
	lastError error
	buildID   string
	publicDir string
	basePath  string
	builtAt   time.Time
	builds    int
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.builds++
}

func (bs *buildStatus) setSuccess(buildID, publicDir, basePath string) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.buildID = buildID
	bs.publicDir = publicDir
	bs.basePath = basePath
	bs.builtAt = time.Now()
	bs.builds++
}

type statusSnapshot struct {
	Status  string    `json:"status"`
	BuildID string    `json:"build_id,omitempty"`
	BuiltAt time.Time `json:"built_at,omitzero"`
	Builds  int       `json:"builds"`
	Error   string    `json:"error,omitempty"`

	publicDir string
	basePath  string
}

func (bs *buildStatus) snapshot() statusSnapshot {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	s := statusSnapshot{BuildID: bs.buildID, BuiltAt: bs.builtAt, Builds: bs.builds, publicDir: bs.publicDir, basePath: bs.basePath}
	switch {
	case bs.lastError != nil:
		s.Status = "error"
		s.Error = bs.lastError.Error()
	case bs.buildID == "":
		s.Status = "starting"
	default:
		s.Status = "ok"
	}
	return s
}

// Run performs the initial build, then serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	s.rebuild(ctx, "initial")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()
	ws := newWatchSet(cfg, s.opts.ConfigPath, s.opts.SourceDir)
	ws.register(watcher)

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.NetworkError(fmt.Sprintf("failed to listen on %s", s.opts.Addr)).WithCause(err).Build()
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Preview server listening", slog.String("url", "http://"+displayHost(ln.Addr().String())+cfg.BaseURL))

	requests, trigger := newDebouncer(s.opts.Debounce)
	done := s.startRebuildWorker(ctx, requests)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.hub.Shutdown()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("HTTP server shutdown error", logfields.Error(err))
			}
			<-done
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ws.handle(watcher, ev) {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// newDebouncer returns a request channel and a trigger that fires into it once
// the trigger has been quiet for d.
func newDebouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}

// startRebuildWorker runs rebuilds one at a time. A request arriving during a
// rebuild is held in the channel's single slot, so at most one is pending.
func (s *Server) startRebuildWorker(ctx context.Context, requests <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-requests:
				s.rebuild(ctx, "watch")
			}
		}
	}()
	return done
}

// rebuild reloads the configuration and regenerates the site.
func (s *Server) rebuild(ctx context.Context, trigger string) {
	if trigger != "initial" {
		slog.Info("Change detected; rebuilding site")
	}
	s.opts.Recorder.IncRebuild(trigger)

	cfg, err := s.load()
	if err != nil {
		slog.Warn("Configuration reload failed", logfields.Error(err))
		s.status.setError(err)
		s.hub.Broadcast(fmt.Sprintf("error:%d", time.Now().UnixNano()))
		return
	}
	gen := hugo.NewGenerator(cfg, s.opts.SourceDir).
		SetRecorder(s.opts.Recorder).
		SetRunMode(hugo.RunHugoAlways).
		SetRenderer(s.renderer(cfg))
	for _, o := range s.opts.Observers {
		gen.AddObserver(o)
	}
	report, err := gen.Generate(ctx, trigger)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("rebuild failed", logfields.Error(err))
		}
		s.status.setError(err)
		s.hub.Broadcast(fmt.Sprintf("error:%d", time.Now().UnixNano()))
		return
	}
	s.status.setSuccess(report.BuildID, gen.PublicDir(), cfg.BaseURL)
	s.hub.Broadcast(report.BuildID)
}

func (s *Server) renderer(cfg *config.Config) hugo.Renderer {
	if s.opts.Renderer != nil {
		return s.opts.Renderer
	}
	return &hugo.BinaryRenderer{
		Binary: cfg.Hugo.Binary,
		Args:   []string{"--baseURL", "http://" + displayHost(s.opts.Addr) + cfg.BaseURL},
	}
}

// displayHost turns a listen address into something a browser can open.
func displayHost(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// Handler returns the preview HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/livereload", s.hub)
	mux.HandleFunc("/livereload.js", serveLiveReloadScript)
	if exp, ok := s.opts.Recorder.(metrics.Exporter); ok {
		mux.Handle("/metrics", exp.Handler())
	}
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/", injectLiveReload(http.HandlerFunc(s.serveSite)))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.status.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if snap.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// serveSite serves the last good build under the site's base path. Until a
// build succeeds, the last error is shown instead.
func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	snap := s.status.snapshot()
	if snap.publicDir == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		msg := "building site"
		if snap.Error != "" {
			msg = "build failed: " + snap.Error
		}
		_, _ = fmt.Fprintf(w, "<!doctype html><html><body><pre>%s</pre></body></html>", htmlEscape(msg))
		return
	}
	base := strings.TrimSuffix(snap.basePath, "/")
	http.StripPrefix(base, http.FileServer(http.Dir(snap.publicDir))).ServeHTTP(w, r)
}

var htmlEscape = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace
