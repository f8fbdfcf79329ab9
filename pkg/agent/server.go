package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/runningwild/mbench/pkg/bench"
	"github.com/runningwild/mbench/pkg/config"
	"github.com/runningwild/mbench/pkg/exec"
	"github.com/runningwild/mbench/pkg/report"
)

// Server runs benchmark requests on behalf of a remote coordinator.
// The measurement itself is exactly the local harness; only the
// request and report travel over HTTP.
type Server struct{}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) ListenAndServe(port int) error {
	http.HandleFunc("/run", s.handleRun)
	http.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("mbench agent listening on %s\n", addr)
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, fmt.Sprintf("Invalid body: %v", err), http.StatusBadRequest)
		return
	}
	cfg.SetDefaults()

	rep, err := Run(&cfg)
	if err != nil {
		status := http.StatusInternalServerError
		var cerr bench.ConfigError
		if errors.As(err, &cerr) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// Run executes the configured commands locally and assembles a report.
// The CLI's local run path uses this too, so agent and direct runs
// cannot drift apart.
func Run(cfg *config.Config) (*report.Report, error) {
	units := make([]bench.Unit, 0, len(cfg.Commands))
	for _, c := range cfg.Commands {
		cmd, err := exec.NewCommand(c.Label, c.Argv)
		if err != nil {
			return nil, bench.ConfigError(err.Error())
		}
		units = append(units, cmd.Unit())
	}

	h := bench.New(cfg.Options())
	runs, err := h.Run(units)
	if err != nil {
		return nil, err
	}
	return report.New(runs, h.Usage()), nil
}
