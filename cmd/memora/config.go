package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DurishettyAnirudh/memora/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config already exists at %s", configPath)
		}

		cfg, err := model.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if err := model.SaveConfig(configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := model.LoadConfig(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("oracle:\n  base_url: %s\n  model: %s\n  embed_model: %s\n",
			cfg.Oracle.BaseURL, cfg.Oracle.Model, cfg.Oracle.EmbedModel)
		fmt.Printf("store:\n  path: %s\n", cfg.Store.Path)
		fmt.Printf("server:\n  addr: %s\n  cors_origins: %v\n",
			cfg.Server.Addr, cfg.Server.CORSOrigins)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
