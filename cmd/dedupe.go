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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/startuplens/entres/internal/ioresolve"
	"github.com/startuplens/entres/internal/iostore"
	"github.com/startuplens/entres/pkg/dedupe"
)

// getDedupeCmd returns the dedupe command.
func getDedupeCmd() *cobra.Command {
	var mf matchFlags

	dedupeCmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Merge duplicate canonical entities",
		Long: `Run the probabilistic pass over all canonical entities.

Similar entities of the same country are found and pairs with
confidence at or above the threshold are merged. Links of a merged
entity move to the kept one and are marked as probabilistic.

The matching model is loaded from --model if the file exists,
otherwise it is trained and saved there.

Examples:
  entres dedupe
  entres dedupe -t 0.9
  entres dedupe -m ~/.cache/entres/model.gob`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mf.apply(cmd)
			err := runDedupe(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	mf.register(dedupeCmd)
	return dedupeCmd
}

func runDedupe(ctx context.Context) error {
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
	stats, err := r.RunProbabilistic(ctx)
	if err != nil {
		return err
	}

	gn.Info(
		"Probabilistic pass: pairs <em>%s</em>, merged <em>%s</em>, "+
			"below threshold %s",
		humanize.Comma(int64(stats.PairsFound)),
		humanize.Comma(int64(stats.Merged)),
		humanize.Comma(int64(stats.BelowThreshold)),
	)
	return nil
}
