package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markma27/pdfsaver/internal/cli"
	"github.com/markma27/pdfsaver/internal/common"
	"github.com/markma27/pdfsaver/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [file.pdf]",
		Short: "Classify one document and show the detected fields",
		Long: `Classify a single document and print the detected fields and the
suggested filename without touching any files.

The input is a PDF file argument, raw text via --text, or text piped on
stdin when neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().String("text", "", "classify this text instead of a file")
	cmd.Flags().Bool("json", false, "print the raw result as JSON")
	cmd.Flags().Int("pages", 0, "pages of text to read (default 2)")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text, _ := cmd.Flags().GetString("text")
	asJSON, _ := cmd.Flags().GetBool("json")
	pages, _ := cmd.Flags().GetInt("pages")

	switch {
	case text != "":
		// Use the flag text as-is.
	case len(args) == 1:
		doc, err := newExtractor(pages).ExtractFile(ctx, args[0])
		if err != nil {
			return err
		}
		if !doc.HasText {
			return common.NewUserError(
				fmt.Sprintf("%s has no usable text layer (scanned image?)", args[0]),
				common.ErrNoText)
		}
		text = doc.Text
	default:
		stdin, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(stdin) == 0 {
			return common.NewUserError("nothing to classify: give a PDF file, --text, or pipe text on stdin", common.ErrInvalidInput)
		}
		text = string(stdin)
	}

	result := newEngine().Classify(ctx, text)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printClassification(result)
	return nil
}

func printClassification(result model.ClassificationResult) {
	fmt.Println(cli.FormatTitle("Classification"))
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Type:        "), orUnknown(result.Fields.DocType))
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Issuer:      "), orUnknown(result.Fields.Issuer))
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Date:        "), orUnknown(result.Fields.DateISO))
	if result.Fields.AccountLast4 != "" {
		fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Account:     "), "…"+result.Fields.AccountLast4)
	}
	if result.Fields.ASXCode != "" {
		fmt.Printf("  %s %s\n", cli.BoldStyle.Render("ASX code:    "), result.Fields.ASXCode)
	}
	fmt.Printf("  %s %d\n", cli.BoldStyle.Render("Confidence:  "), result.Confidence)
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Filename:    "), result.Filename)

	if result.NeedsReview {
		fmt.Println(cli.FormatWarning("Low confidence, review suggested"))
	}
}

func orUnknown(s string) string {
	if s == "" {
		return cli.SubtleStyle.Render("unknown")
	}
	return s
}
