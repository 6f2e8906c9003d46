package main

import (
	"github.com/dvloznov/finance-entry/internal/categories"
	"github.com/dvloznov/finance-entry/internal/config"
	"github.com/dvloznov/finance-entry/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagServer string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "entry",
	Short: "Inspect the finance entry form from the terminal",
	Long: "Drives the transaction and investment entry forms against the category service " +
		"and prints the resulting field layout.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagServer == "" {
			flagServer = cfg.CategoryServiceURL
		}
		log = logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Category service address (default CATEGORY_SERVICE_URL)")
	rootCmd.AddCommand(fieldsCmd, convertCmd, categoriesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newCategoryClient() *categories.HTTPClient {
	return categories.NewHTTPClient(flagServer, cfg.HTTPClient())
}
