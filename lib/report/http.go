package report

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/go-dtn/go-moby/lib/sim"
)

// Server exposes a running world read-only over HTTP: aggregate counters and
// per-host buffer/priority/trust introspection. Snapshots take the world
// lock, so handlers are safe against the tick loop.
type Server struct {
	world *sim.World
	srv   *http.Server
}

func NewServer(addr string, world *sim.World) *Server {
	s := &Server{world: world}

	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/hosts", s.handleHosts).Methods(http.MethodGet)
	r.HandleFunc("/hosts/{name}", s.handleHost).Methods(http.MethodGet)

	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

// Start serves in the background. Listen errors surface on the returned
// channel, so the caller can log them without blocking the run.
func (s *Server) Start() <-chan error {
	errc := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()
	return errc
}

func (s *Server) Close() error {
	return s.srv.Close()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.world.Snapshot()
	snap.Hosts = nil
	writeJSON(w, snap)
}

func (s *Server) handleHosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.world.Snapshot().Hosts)
}

func (s *Server) handleHost(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	for _, h := range s.world.Snapshot().Hosts {
		if h.Name == name {
			writeJSON(w, h)
			return
		}
	}
	http.NotFound(w, r)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
