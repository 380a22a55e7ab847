// Command planner is the CLI and HTTP entry point for the schedule
// planner. Its root-command wiring follows the pack's cobra convention of
// a package-level rootCmd with subcommands registered in init, rather than
// the teacher's bare main() (the teacher has no CLI at all, only an HTTP
// server), generalized to also serve over net/http via "planner serve".
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Generate conflict-free class schedules from curriculum, offering and difficulty data",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a planner.yaml config file")
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("planner: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
}

func fatalf(format string, args ...interface{}) {
	log.Printf(format, args...)
	os.Exit(1)
}
