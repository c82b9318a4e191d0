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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/startuplens/entres/internal/iostore"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create canonical entity store schema",
		Long: `Create the canonical entity store schema from scratch.

This command:
  1. Opens the store selected by database.driver (PostgreSQL or SQLite)
  2. Checks for existing tables and prompts for confirmation
  3. Creates canonical_entities and entity_links tables with indexes

PostgreSQL tables are created with GORM AutoMigrate, SQLite tables
with DDL generated from the models.

Use --force to skip confirmation and drop existing tables.

Examples:
  entres create
  entres create --force
  ENTRES_DATABASE_DRIVER=sqlite entres create`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd.Context(), forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(ctx context.Context, force bool) error {
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

	if hasTables {
		if !force && !confirm() {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		gn.Info("Dropping all existing tables...")
		if err = b.DropAllTables(ctx); err != nil {
			return err
		}
		gn.Info("All tables dropped")
	}

	gn.Info("Creating schema...")
	if err = b.Schema.Create(ctx); err != nil {
		return err
	}

	gn.Info("\nStore schema creation complete!")
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'entres resolve -i FILE' to resolve records")
	return nil
}

func confirm() bool {
	gn.Warn("\nWarning: Store contains existing tables.")
	gn.Warn("Creating schema will drop ALL existing entities and links.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
