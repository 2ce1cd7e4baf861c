package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"laravel-migration/internal/engine"
	"laravel-migration/internal/output"
	"laravel-migration/internal/schema"
)

var (
	catalogPath string
	outDir      string
	tables      []string
	dryRun      bool
	watch       bool
	noColor     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render Laravel migrations for every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			output.SetColor(false)
		}

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		run := func() error {
			return runExport(ctx, w)
		}

		if !watch {
			return run()
		}
		if catalogPath == "" {
			return fmt.Errorf("--watch requires --catalog")
		}
		if err := run(); err != nil {
			log.Printf("export failed: %v", err)
		}
		return watchCatalog(ctx, catalogPath, run)
	},
}

func runExport(ctx context.Context, w io.Writer) error {
	cat, err := loadCatalog(ctx, catalogPath)
	if err != nil {
		return err
	}
	// Decided before filtering so every run of the same catalog saves into
	// the same layout.
	perSchema := len(cat.Schemas) > 1

	cat, err = filterTables(cat, targetTableNames(tables))
	if err != nil {
		return err
	}

	// Dry Run
	if dryRun {
		log.Println("[SIMULATION] Dry-Run Mode Active: No files will be written.")
		printOrder(w, cat)
		return nil
	}

	start := time.Now()

	// Setup Progress Bar
	total := engine.CountTables(cat)
	var bar *uiprogress.Bar
	if total > 0 {
		uiprogress.Start()
		bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Rendering: "
		})
	}

	sess, err := engine.Export(cat, engine.Options{
		DefaultEngine: viper.GetString("settings.default_engine"),
		CharsetBytes:  viper.GetInt("settings.charset_bytes"),
		OnProgress: func(schemaName, table string) {
			if bar != nil {
				bar.Incr()
			}
		},
	})

	if bar != nil {
		uiprogress.Stop()
	}

	if err != nil {
		return err
	}

	output.WriteIndexSizeNotice(w, sess.Warnings())
	output.WriteReview(w, sess)

	var failures []error
	dir := outDir
	if dir == "" {
		dir = viper.GetString("settings.output_dir")
	}
	if dir != "" {
		failures = append(failures, saveSession(w, sess, dir, perSchema)...)
	}

	printSummary(w, sess)
	for _, r := range sess.Failed() {
		failures = append(failures, r.Err)
	}
	log.Printf("Export Done! Time Elapsed: %s", time.Since(start))

	if len(failures) > 0 {
		return fmt.Errorf("export finished with %d problem(s): %w", len(failures), errors.Join(failures...))
	}
	return nil
}

// saveSession writes every schema that produced migrations. With perSchema
// set each schema gets its own sub directory of dir.
func saveSession(w io.Writer, sess *engine.Session, dir string, perSchema bool) []error {
	var failures []error
	now := time.Now()
	for _, r := range sess.Results {
		if len(r.Units) == 0 {
			continue
		}
		target := dir
		if perSchema {
			target = filepath.Join(dir, r.Schema)
		}

		report, err := output.Save(target, r.Units, now)
		if err != nil {
			fmt.Fprintf(w, "%s %v\n", output.Error("error:"), err)
			failures = append(failures, err)
			continue
		}
		for _, path := range report.Created {
			fmt.Fprintf(w, "%s %s\n", output.Success("created"), path)
		}
		for _, path := range report.Overwritten {
			fmt.Fprintf(w, "%s %s\n", output.Success("updated"), path)
		}
		for _, perr := range report.Errors {
			fmt.Fprintf(w, "%s %v\n", output.Error("error:"), perr)
			failures = append(failures, perr)
		}
	}
	return failures
}

func printOrder(w io.Writer, cat *schema.Catalog) {
	for _, s := range cat.Schemas {
		fmt.Fprintf(w, "🔍 Analysis Results (%s):\n", s.Name)
		ordered, err := schema.OrderTables(s.Tables)
		if err != nil {
			fmt.Fprintf(w, "%s %v\n", output.Warning("warning:"), err)
		}
		for i, t := range ordered {
			fmt.Fprintf(w, "[%02d] %s (Dependencies: %v)\n", i+1, t.Name, t.Dependencies())
		}
	}
}

func printSummary(w io.Writer, sess *engine.Session) {
	fmt.Fprintln(w, "\n📊 Summary Report:")
	total := 0
	for i, r := range sess.Results {
		icon := "✓"
		if r.Status() != engine.StatusOK {
			icon = "!"
		}
		fmt.Fprintf(w, "[%s] [%02d/%02d] %-20s : %d migrations - %s\n",
			icon, i+1, len(sess.Results), r.Schema, len(r.Units), r.Status())
		if r.Err != nil {
			fmt.Fprintf(w, "    └ Error: %v\n", r.Err)
		}
		total += len(r.Units)
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total Migrations: %d\n", total)
}

func init() {
	RootCmd.AddCommand(exportCmd)

	// CLI Flags
	exportCmd.Flags().StringVar(&catalogPath, "catalog", "", "Read the schema from a catalog YAML file instead of a database")
	exportCmd.Flags().StringVar(&outDir, "out", "", "Directory to save migrations into (overrides settings.output_dir)")
	exportCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to export (comma-separated)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the emission order without rendering")
	exportCmd.Flags().BoolVar(&watch, "watch", false, "Re-export whenever the catalog file changes")
	exportCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
