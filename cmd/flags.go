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
	"github.com/spf13/cobra"
	"github.com/startuplens/entres/pkg/config"
)

// matchFlags are the probabilistic matching settings shared by
// resolve and dedupe.
type matchFlags struct {
	model     string
	threshold float64
}

func (f *matchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "",
		"matching model file (trained and saved if absent)")
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", 0,
		"minimal confidence (0-1] for a merge")
}

// apply copies explicitly set flags into the configuration.
func (f *matchFlags) apply(cmd *cobra.Command) {
	var opts []config.Option
	if cmd.Flags().Changed("model") {
		opts = append(opts, config.OptResolveModelPath(f.model))
	}
	if cmd.Flags().Changed("threshold") {
		opts = append(opts, config.OptResolveConfidenceThreshold(f.threshold))
	}
	cfg.Update(opts)
}
