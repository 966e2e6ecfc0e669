// Command memora runs the natural language task scheduling assistant.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DurishettyAnirudh/memora/internal/model"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "memora",
	Short: "Natural language task scheduling assistant",
	Long: `Memora is a task scheduling assistant driven by natural language.
It turns requests like "add a meeting tomorrow at 3pm" into stored,
conflict-checked tasks, served over a small HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(),
		"path to the configuration file",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
