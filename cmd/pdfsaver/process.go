package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markma27/pdfsaver/internal/cli"
	"github.com/markma27/pdfsaver/internal/config"
	"github.com/markma27/pdfsaver/internal/filename"
	"github.com/markma27/pdfsaver/internal/pipeline"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <path>...",
		Short: "Classify and rename a batch of PDF documents",
		Long: `Classify every given PDF (files or directories of files), compute its
standard filename, and copy it to the output directory under that name.

Examples:
  pdfsaver process statements/            # copy renamed files next to the originals
  pdfsaver process -o sorted/ inbox/      # copy into sorted/
  pdfsaver process --rename inbox/a.pdf   # move instead of copying
  pdfsaver process --dry-run inbox/       # only show what would happen`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default: alongside each source)")
	cmd.Flags().Bool("rename", false, "move files instead of copying")
	cmd.Flags().Bool("dry-run", false, "compute names without touching files")
	cmd.Flags().BoolP("recursive", "r", false, "recurse into directories")
	cmd.Flags().Int("workers", 0, "concurrent workers (default 4)")
	cmd.Flags().Int("pages", 0, "pages of text to read per document (default 2)")
	cmd.Flags().String("policy", "", "filename policy: titlecase or slug")
	cmd.Flags().String("report", "", "write a CSV report to this file")

	_ = viper.BindPFlag("output.dir", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.policy", cmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("classification.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("classification.pages", cmd.Flags().Lookup("pages"))

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	recursive, _ := cmd.Flags().GetBool("recursive")
	rename, _ := cmd.Flags().GetBool("rename")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	reportPath, _ := cmd.Flags().GetString("report")

	policy, err := filename.ParsePolicy(viper.GetString("output.policy"))
	if err != nil {
		return err
	}

	paths, err := collectPDFs(args, recursive)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println(cli.FormatWarning("No PDF files found"))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Processing %d documents", len(paths))))

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("classifying"),
		progressbar.OptionClearOnFinish(),
	)

	processor := &pipeline.Processor{
		Engine:    newEngine(),
		Extractor: newExtractor(0),
		Workers:   viper.GetInt("classification.workers"),
		Policy:    policy,
	}

	results, err := processor.Process(ctx, paths, pipeline.Options{
		OutputDir: config.ExpandPath(viper.GetString("output.dir")),
		Rename:    rename,
		DryRun:    dryRun,
		OnProgress: func(done, _ int) {
			_ = bar.Set(done)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	printSummary(results, dryRun)

	if reportPath != "" {
		if err := writeReportFile(reportPath, results); err != nil {
			return err
		}
		fmt.Println(cli.FormatInfo("Report written to " + reportPath))
	}

	return nil
}

func printSummary(results []pipeline.Result, dryRun bool) {
	var failed, review int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Classification.NeedsReview:
			review++
		}
	}
	ok := len(results) - failed

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d of %d documents classified", ok, len(results))))
	if dryRun {
		fmt.Println(cli.SubtleStyle.Render("dry run: no files were written"))
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", r.Path, r.Err)))
		case r.Classification.NeedsReview:
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s → %s (confidence %d, needs review)",
				r.Path, r.NewName, r.Classification.Confidence)))
		default:
			fmt.Printf("%s %s → %s\n", cli.SuccessIcon, r.Path, r.NewName)
		}
	}

	if review > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d documents need review", review)))
	}
}

func writeReportFile(path string, results []pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := pipeline.WriteReport(f, results); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
