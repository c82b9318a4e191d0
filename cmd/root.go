/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/startuplens/entres/internal/ioconfig"
	"github.com/startuplens/entres/internal/iofs"
	"github.com/startuplens/entres/internal/iologger"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/config"
)

var (
	homeDir string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = getRootCmd()

func getRootCmd() *cobra.Command {
	res := &cobra.Command{
		Version: fmt.Sprintf(
			"version: %s\nbuild:   %s", entres.Version, entres.Build,
		),
		Use:   "entres",
		Short: "Entres resolves company records into canonical entities",
		Long: `Entres links company records coming from many source systems to
canonical entities.

Records are resolved in two stages:
  - deterministic: known source keys, then normalized name and country
  - probabilistic: similar entities are found and merged

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (ENTRES_*)
  3. Config file (~/.config/entres/config.yaml)
  4. Built-in defaults

Examples:
  entres create
  entres resolve -i records.yaml --probabilistic
  entres validate -g ground_truth.yaml`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "entres version" prefix
	res.SetVersionTemplate("{{.Version}}\n")
	res.Flags().BoolP("version", "V", false, "version for entres")

	res.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getResolveCmd(),
		getDedupeCmd(),
		getValidateCmd(),
	)
	return res
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	if cfg, err = ioconfig.Load(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
