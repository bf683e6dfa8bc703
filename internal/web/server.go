// Package web serves a live preview of a converted TEI document over
// HTTP. It watches the source file for changes, reconverts on demand,
// and notifies connected browsers over a WebSocket so they can reload.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/FocuswithJustin/PageTEI/internal/logging"
)

// Config holds preview server settings.
type Config struct {
	// Port to listen on.
	Port int

	// InputPath is the watched source document.
	InputPath string

	// Convert produces the current TEI serialization of InputPath.
	Convert func() ([]byte, error)

	// PollInterval between modification-time checks. Defaults to one
	// second when zero.
	PollInterval time.Duration
}

// Server is the live preview HTTP server.
type Server struct {
	cfg Config
	hub *Hub

	mu      sync.RWMutex
	current []byte
	lastErr error
}

// NewServer creates a preview server. The first conversion happens
// lazily on the first request or watch cycle.
func NewServer(cfg Config) *Server {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Server{cfg: cfg, hub: NewHub()}
}

// Run converts once, starts the file watcher and hub, and serves until
// the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.reconvert()

	go s.hub.Run()
	go s.watch(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/tei", s.handleTEI)
	mux.HandleFunc("/ws", s.handleWebSocket)

	handler := logging.RequestIDMiddleware(logging.LoggingMiddleware(mux))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.ServerStartup("preview", s.cfg.Port, "input", s.cfg.InputPath)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// watch polls the input file's modification time and reconverts when it
// changes.
func (s *Server) watch(ctx context.Context) {
	var lastMod time.Time
	if info, err := os.Stat(s.cfg.InputPath); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(s.cfg.InputPath)
			if err != nil {
				continue
			}
			if !info.ModTime().After(lastMod) {
				continue
			}
			lastMod = info.ModTime()

			logging.Info("input changed, reconverting", "input", s.cfg.InputPath)
			if err := s.reconvert(); err != nil {
				s.hub.Broadcast(ReloadMessage{Type: "error", Message: err.Error()})
			} else {
				s.hub.Broadcast(ReloadMessage{Type: "updated"})
			}
		}
	}
}

func (s *Server) reconvert() error {
	data, err := s.cfg.Convert()

	s.mu.Lock()
	if err == nil {
		s.current = data
	}
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		logging.Error("conversion failed", "input", s.cfg.InputPath, "error", err)
	}
	return err
}

func (s *Server) handleTEI(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data, lastErr := s.current, s.lastErr
	s.mu.RUnlock()

	if lastErr != nil && data == nil {
		http.Error(w, lastErr.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, s.cfg.InputPath)
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>TEI preview</title>
<style>
body { font-family: monospace; margin: 2em; }
#status { color: #666; margin-bottom: 1em; }
#status.error { color: #b00; }
pre { white-space: pre-wrap; border: 1px solid #ddd; padding: 1em; }
</style>
</head>
<body>
<div id="status">watching %s</div>
<pre id="tei"></pre>
<script>
async function load() {
  const resp = await fetch('/tei');
  document.getElementById('tei').textContent = await resp.text();
}
function connect() {
  const ws = new WebSocket('ws://' + location.host + '/ws');
  ws.onmessage = function(ev) {
    const msg = JSON.parse(ev.data);
    const status = document.getElementById('status');
    if (msg.type === 'error') {
      status.textContent = 'conversion error: ' + msg.message;
      status.className = 'error';
    } else {
      status.textContent = 'updated ' + msg.timestamp;
      status.className = '';
      load();
    }
  };
  ws.onclose = function() { setTimeout(connect, 2000); };
}
load();
connect();
</script>
</body>
</html>
`
