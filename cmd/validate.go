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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/startuplens/entres/internal/ioinput"
	"github.com/startuplens/entres/internal/iostore"
	"github.com/startuplens/entres/pkg/validate"
)

// getValidateCmd returns the validate command.
func getValidateCmd() *cobra.Command {
	var groundTruth string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Measure resolution quality against ground truth",
		Long: `Compare current entity links with labelled record pairs.

The ground truth file lists pairs of source keys with a flag telling
whether both records belong to the same company. Precision, recall
and F1 of the store are printed with a quality assessment.

Examples:
  entres validate -g ground_truth.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runValidate(cmd.Context(), groundTruth)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	validateCmd.Flags().StringVarP(&groundTruth, "ground-truth", "g", "",
		"YAML or JSON file with labelled record pairs")
	_ = validateCmd.MarkFlagRequired("ground-truth")

	return validateCmd
}

func runValidate(ctx context.Context, path string) error {
	pairs, err := ioinput.LoadGroundTruth(path)
	if err != nil {
		return err
	}

	b, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	if err = b.Ready(ctx); err != nil {
		return err
	}

	m, err := validate.Evaluate(ctx, b.LinkedEntity, pairs)
	if err != nil {
		return err
	}

	fmt.Println(validate.Report(m))
	return nil
}
