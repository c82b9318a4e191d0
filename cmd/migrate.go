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
	"github.com/startuplens/entres/internal/iostore"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate store schema to latest version",
		Long: `Migrate updates the store schema to the latest version.

Existing entities and links are preserved. New tables, columns and
indexes are added, nothing is deleted.

Examples:
  entres migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMigrate(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return migrateCmd
}

func runMigrate(ctx context.Context) error {
	b, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	gn.Info("Connected to store: <em>%s</em>", b.Desc)

	hasTables, err := b.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Store appears to be empty.
	Run 'entres create' first to initialize the schema.`)
		return nil
	}

	gn.Info("Migrating schema to latest version...")
	if err = b.Schema.Migrate(ctx); err != nil {
		return err
	}

	gn.Info("Schema is now up to date.")
	return nil
}
