package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/markma27/pdfsaver/internal/cli"
	"github.com/markma27/pdfsaver/internal/config"
	"github.com/markma27/pdfsaver/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate classification rules",
	}

	cmd.AddCommand(rulesShowCmd())
	cmd.AddCommand(rulesCheckCmd())

	return cmd
}

func rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active rule set as YAML",
		Long: `Print the rule set the engine would use: the configured rules file
when one is set, otherwise the built-in defaults. The output is valid
rules-file YAML and can seed a custom rules file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, source, err := activeRuleSet()
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stderr, cli.FormatInfo("Rules from "+source))

			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(set); err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			return enc.Close()
		},
	}
}

func rulesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [rules.yaml]",
		Short: "Validate a rules file and report suspect configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				set    rules.Set
				source string
				err    error
			)
			if len(args) == 1 {
				set, err = rules.LoadFile(args[0])
				source = args[0]
			} else {
				set, source, err = activeRuleSet()
			}
			if err != nil {
				return err
			}

			warnings := rules.Validate(set)
			if len(warnings) == 0 {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %d types, no warnings", source, len(set.Types))))
				return nil
			}

			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: %d warnings", source, len(warnings))))
			for _, w := range warnings {
				fmt.Printf("  %s %s\n", cli.WarningStyle.Render("•"), w)
			}
			return nil
		},
	}
}

// activeRuleSet loads the raw rule set the engine would use, along with a
// description of where it came from.
func activeRuleSet() (rules.Set, string, error) {
	path := viper.GetString("rules.path")
	if path == "" {
		return rules.DefaultSet(), "built-in defaults", nil
	}

	path = config.ExpandPath(path)
	set, err := rules.LoadFile(path)
	if err != nil {
		return rules.Set{}, "", err
	}
	return set, path, nil
}
