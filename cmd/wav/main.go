package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// configPath overrides ~/.config/wav/config.toml when set.
var configPath string

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "wav",
		Short:   "WhatsApp Viewer - extract, browse and search exported WhatsApp chats",
		Version: version,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/wav/config.toml)")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(chatsCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(mediaCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
