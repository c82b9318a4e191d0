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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/startuplens/entres/internal/ioinput"
	"github.com/startuplens/entres/internal/ioresolve"
	"github.com/startuplens/entres/internal/iostore"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/dedupe"
)

// getResolveCmd returns the resolve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getResolveCmd() *cobra.Command {
	var (
		input         string
		source        string
		bulk          bool
		probabilistic bool
		mf            matchFlags
	)

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve source records to canonical entities",
		Long: `Resolve company records from a YAML or JSON file.

This command:
  1. Reads records (name, country, source, source_identifier)
  2. Links every record to a canonical entity:
     - a record with a known source key keeps its entity
     - otherwise a matching normalized name and country is used
     - otherwise a new entity is created
  3. Optionally runs the probabilistic pass that merges similar
     entities

With --bulk, records skip matching and each unseen record gets its
own entity. Duplicates are left for the probabilistic pass.

Examples:
  entres resolve -i records.yaml
  entres resolve -i records.json --source registry
  entres resolve -i formd.yaml --bulk --probabilistic
  entres resolve -i records.yaml -p -t 0.9 -m ~/entres.model`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("input") {
				cfg.Update([]config.Option{config.OptResolveInput(input)})
			}
			if cmd.Flags().Changed("source") {
				cfg.Update([]config.Option{config.OptResolveSource(source)})
			}
			cfg.Update([]config.Option{
				config.OptResolveBulk(bulk),
				config.OptResolveProbabilistic(probabilistic),
			})
			mf.apply(cmd)

			err := runResolve(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	resolveCmd.Flags().StringVarP(&input, "input", "i", "",
		"YAML or JSON file with source records")
	resolveCmd.Flags().StringVarP(&source, "source", "s", "",
		"resolve only records of this source system")
	resolveCmd.Flags().BoolVarP(&bulk, "bulk", "b", false,
		"create entities without matching")
	resolveCmd.Flags().BoolVarP(&probabilistic, "probabilistic", "p", false,
		"run probabilistic matching after resolution")
	mf.register(resolveCmd)
	_ = resolveCmd.MarkFlagRequired("input")

	return resolveCmd
}

func runResolve(ctx context.Context) error {
	recs, err := ioinput.LoadRecords(cfg.Resolve.Input)
	if err != nil {
		return err
	}

	b, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	gn.Info("Connected to store: <em>%s</em>", b.Desc)
	if err = b.Ready(ctx); err != nil {
		return err
	}

	r := ioresolve.New(cfg, b, dedupe.New(cfg))
	_, err = r.Run(ctx, recs, entres.RunOptions{
		Source:        cfg.Resolve.Source,
		Bulk:          cfg.Resolve.Bulk,
		Probabilistic: cfg.Resolve.Probabilistic,
	})
	return err
}
