package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/kimhsiao/rulebook/cmd/rulebook/handlers"
	"github.com/kimhsiao/rulebook/internal/logging"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the localhost REST/WebSocket API for the UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, kvStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer kvStore.Close()

			hub := handlers.NewHub()
			st.OnChange(hub.BroadcastChange)

			entryHandler := handlers.NewEntryHandler(st)
			snapshotHandler := handlers.NewSnapshotHandler(st, hub)

			mux := http.NewServeMux()
			mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"status":"ok","service":"rulebook"}`))
			})
			mux.HandleFunc("/api/view", entryHandler.View)
			mux.HandleFunc("/api/entries", entryHandler.Create)
			mux.HandleFunc("/api/entries/selected", entryHandler.Selected)
			mux.HandleFunc("/api/selection", entryHandler.SetSelection)
			mux.HandleFunc("/api/query", entryHandler.SetQuery)
			mux.HandleFunc("/api/export", snapshotHandler.Export)
			mux.HandleFunc("/api/import", snapshotHandler.Import)
			mux.HandleFunc("/ws", hub.ServeWS)

			logging.Info("rulebook server listening", logging.Fields{
				"addr":     cfg.Server.ListenAddr,
				"data_dir": cfg.DataDir,
			})
			return http.ListenAndServe(cfg.Server.ListenAddr, mux)
		},
	}
}
