package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomadstar/classplanner/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Clear the row cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the on-disk row cache database",
	Run:   runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatalf("load config: %v", err)
		return
	}
	if err := os.Remove(cfg.CachePath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("cache already empty")
			return
		}
		fatalf("remove cache: %v", err)
		return
	}
	fmt.Printf("removed %s\n", cfg.CachePath)
}
