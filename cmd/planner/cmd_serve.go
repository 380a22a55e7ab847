package main

import (
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nomadstar/classplanner/internal/cache"
	"github.com/nomadstar/classplanner/internal/config"
	"github.com/nomadstar/classplanner/internal/httpapi"
)

var (
	serveManifestPath string
	serveAddr         string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveManifestPath, "manifest", "manifest.yaml", "manifest file mapping sheet names to curriculum/offering/difficulty CSVs")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the config's server_port)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatalf("load config: %v", err)
		return
	}

	manifest, err := loadManifest(serveManifestPath)
	if err != nil {
		fatalf("load manifest: %v", err)
		return
	}

	store, err := cache.Open(cfg.CachePath, cfg.CacheEnabled)
	if err != nil {
		fatalf("open cache: %v", err)
		return
	}
	defer store.Close()

	srv := &httpapi.Server{
		Manifest: manifest,
		Cache:    store,
		Config:   cfg.PlanConfig(),
	}

	addr := serveAddr
	if addr == "" {
		addr = ":" + cfg.ServerPort
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      srv.NewMux(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("classplanner listening on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
