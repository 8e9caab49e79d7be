package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatapp/internal/app"
	"chatapp/internal/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "chatapp",
		Short:         "Desktop shell for the chat app",
		Version:       app.AppVersion,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (default $"+config.EnvConfigPath+" or <user config dir>/chatapp/"+config.ConfigFileName+")")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newInitCmd(&opts.ConfigPath))
	return cmd
}

func run(ctx context.Context, opts app.Options) error {
	application, err := app.NewApplication(opts)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			return fmt.Errorf("%w (run `chatapp init` to create one)", err)
		}
		return fmt.Errorf("application initialization failed: %w", err)
	}
	return application.Run(ctx)
}

func newInitCmd(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := *configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
