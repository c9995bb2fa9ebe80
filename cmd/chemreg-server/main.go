package main

import (
	"net/http"
	"strings"

	"github.com/daniacca/chemreg/internal/chemreg"
)

// registerRoutes attaches all server routes to the given mux
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/table", s.handleTableRoutes)
	mux.HandleFunc("/registry/", s.handleRegistryRoutes)
	mux.HandleFunc("/snapshot", s.handleSnapshotRoutes)
	mux.HandleFunc("/snapshot/", s.handleSnapshotRoutes)
	mux.HandleFunc("/notifiers", s.handleNotifiersRoutes)
	mux.HandleFunc("/notifiers/", s.handleNotifiersRoutes)
	mux.HandleFunc("/ws/", s.handleWebSocket)
}

func main() {
	cfg := loadServerConfig()
	logger := NewLogger(cfg.LogLevel)

	srv := NewServer(logger)
	srv.SetSnapshotFile(cfg.SnapshotFile)

	// Load an initial table if one was configured
	if cfg.TableFile != "" {
		table, err := loadInitialTableFromFile(cfg.TableFile)
		if err != nil {
			logger.Fatalf("Failed to load table file %s: %v", cfg.TableFile, err)
		}
		if err := chemreg.ApplyTableConfig(srv.set, table); err != nil {
			logger.Fatalf("Failed to apply table file %s: %v", cfg.TableFile, err)
		}
		logger.Infof("Initial table loaded: table=%s file=%s", table.Name, cfg.TableFile)
	}

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	addr := cfg.Addr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	logger.Infof("chemreg-server listening on %s", addr)
	logger.Fatalf("%v", http.ListenAndServe(addr, mux))
}
