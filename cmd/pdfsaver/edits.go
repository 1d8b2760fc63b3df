package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/markma27/pdfsaver/internal/cli"
	"github.com/markma27/pdfsaver/internal/model"
)

func editsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edits",
		Short: "Manage recorded filename corrections",
		Long: `Filename corrections you record here are remembered: when a later
document looks similar to a corrected one, the earlier correction is
surfaced as a precedent.`,
	}

	cmd.AddCommand(editsListCmd())
	cmd.AddCommand(editsAddCmd())
	cmd.AddCommand(editsSimilarCmd())
	cmd.AddCommand(editsClearCmd())

	return cmd
}

func editsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded corrections, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			edits, err := store.ListEdits(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(edits) == 0 {
				fmt.Println(cli.FormatInfo("No corrections recorded"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d corrections", len(edits))))
			for _, e := range edits {
				fmt.Printf("  %s %s → %s\n",
					cli.SubtleStyle.Render(e.CreatedAt.Format("2006-01-02")),
					e.OriginalFilename, cli.BoldStyle.Render(e.EditedFilename))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum corrections to show (0 for all)")
	return cmd
}

func editsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <original> <corrected>",
		Short: "Record a filename correction",
		Long: `Record that a document classified as <original> should have been named
<corrected>. The corrected name is parsed for its date, issuer, and
document type when it follows the standard form.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, _ := cmd.Flags().GetString("sample")
			file, _ := cmd.Flags().GetString("file")

			if sample == "" && file != "" {
				doc, err := newExtractor(0).ExtractFile(cmd.Context(), file)
				if err != nil {
					return err
				}
				sample = doc.Text
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			edit := model.Edit{
				OriginalFilename: filepath.Base(args[0]),
				EditedFilename:   filepath.Base(args[1]),
				Fields:           parseFilenameFields(args[1]),
				TextSample:       sample,
			}
			if err := store.RecordEdit(cmd.Context(), &edit); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded correction #%d", edit.ID)))
			return nil
		},
	}
	cmd.Flags().String("sample", "", "document text excerpt to aid similarity lookups")
	cmd.Flags().String("file", "", "take the text excerpt from this PDF")
	return cmd
}

func editsSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar [file.pdf | filename]",
		Short: "Find corrections similar to a document",
		Long: `Rank recorded corrections by similarity to the given document. A PDF
argument is classified first; any other argument is parsed as a filename
in the standard form. Without an argument, --type and --issuer describe
the document directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			max, _ := cmd.Flags().GetInt("max")

			var (
				fields model.DetectedFields
				sample string
				err    error
			)
			if len(args) == 1 {
				fields, sample, err = similarQuery(cmd, args[0])
				if err != nil {
					return err
				}
			} else {
				fields.DocType, _ = cmd.Flags().GetString("type")
				fields.Issuer, _ = cmd.Flags().GetString("issuer")
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			scored, err := store.FindSimilar(cmd.Context(), fields, sample, max)
			if err != nil {
				return err
			}
			if len(scored) == 0 {
				fmt.Println(cli.FormatInfo("No similar corrections found"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d similar corrections", len(scored))))
			for _, s := range scored {
				fmt.Printf("  %s %s → %s\n",
					cli.SubtleStyle.Render(fmt.Sprintf("[%2d]", s.Score)),
					s.Edit.OriginalFilename, cli.BoldStyle.Render(s.Edit.EditedFilename))
			}
			return nil
		},
	}
	cmd.Flags().Int("max", 5, "maximum corrections to show")
	cmd.Flags().String("type", "", "document type to match when no file is given")
	cmd.Flags().String("issuer", "", "issuer to match when no file is given")
	return cmd
}

func editsClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded corrections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				fmt.Println(cli.FormatWarning("This deletes every recorded correction; re-run with --force to confirm"))
				return nil
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			if err := store.ClearEdits(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Corrections cleared"))
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "skip the confirmation")
	return cmd
}

// similarQuery builds the similarity query for an argument: classify it
// when it is a PDF on disk, otherwise parse it as a standard-form
// filename.
func similarQuery(cmd *cobra.Command, arg string) (model.DetectedFields, string, error) {
	if !isPDF(arg) {
		return parseFilenameFields(arg), "", nil
	}

	doc, err := newExtractor(0).ExtractFile(cmd.Context(), arg)
	if err != nil {
		return model.DetectedFields{}, "", err
	}
	result := newEngine().Classify(cmd.Context(), doc.Text)
	sample := doc.Text
	if len(sample) > model.MaxEditTextSample {
		sample = sample[:model.MaxEditTextSample]
	}
	return result.Fields, sample, nil
}
