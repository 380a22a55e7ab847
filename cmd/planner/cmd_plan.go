package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomadstar/classplanner/internal/cache"
	"github.com/nomadstar/classplanner/internal/config"
	"github.com/nomadstar/classplanner/internal/plan"
)

var (
	planManifestPath string
	planSheet        string
	planRequestPath  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the planner once against a manifest sheet and print the response as JSON",
	Run:   runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planManifestPath, "manifest", "manifest.yaml", "manifest file mapping sheet names to curriculum/offering/difficulty CSVs")
	planCmd.Flags().StringVar(&planSheet, "sheet", "", "sheet name to resolve (defaults to the manifest's latest)")
	planCmd.Flags().StringVar(&planRequestPath, "request", "", "path to a JSON file with the request body (defaults to an empty request)")
}

func runPlan(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatalf("load config: %v", err)
		return
	}

	manifest, err := loadManifest(planManifestPath)
	if err != nil {
		fatalf("load manifest: %v", err)
		return
	}
	files, err := manifest.Resolve(planSheet)
	if err != nil {
		fatalf("resolve sheet: %v", err)
		return
	}

	store, err := cache.Open(cfg.CachePath, cfg.CacheEnabled)
	if err != nil {
		fatalf("open cache: %v", err)
		return
	}
	defer store.Close()

	docs, err := store.Load(context.Background(), files)
	if err != nil {
		fatalf("load documents: %v", err)
		return
	}

	var req plan.Request
	if planRequestPath != "" {
		data, err := os.ReadFile(planRequestPath)
		if err != nil {
			fatalf("read request: %v", err)
			return
		}
		if err := json.Unmarshal(data, &req); err != nil {
			fatalf("parse request: %v", err)
			return
		}
	}

	resp, planErr := plan.Plan(context.Background(), docs, req, cfg.PlanConfig())
	if planErr != nil {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(planErr)
		os.Exit(1)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "encode response: %v\n", err)
		os.Exit(1)
	}
}
