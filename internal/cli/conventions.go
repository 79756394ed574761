package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/config"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
)

var conventionsCmd = &cobra.Command{
	Use:   "conventions",
	Short: "Manage the convention knowledge base",
}

var conventionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active conventions for the configured repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		repositoryID, store, err := openKnowledge()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		defer store.Close()

		conventions, err := store.GetAllConventions(context.Background(), repositoryID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if len(conventions) == 0 {
			fmt.Fprintf(os.Stdout, "No conventions stored for %s.\n", repositoryID)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tSEVERITY\tRULE")
		for _, c := range conventions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Category, c.Severity, c.Rule)
		}
		return w.Flush()
	},
}

var (
	flagConvID          string
	flagConvCategory    string
	flagConvRule        string
	flagConvDescription string
	flagConvSeverity    string
	flagConvConfidence  float64
	flagConvTags        string
)

var conventionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a convention for the configured repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagConvID == "" || flagConvRule == "" || flagConvCategory == "" {
			fmt.Fprintln(os.Stderr, "Error: --id, --category, and --rule are required")
			exitCode = ExitUsageError
			return nil
		}

		repositoryID, store, err := openKnowledge()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		defer store.Close()

		var tags []string
		for _, t := range strings.Split(flagConvTags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}

		c := convention.Convention{
			ID:          flagConvID,
			Category:    convention.Category(flagConvCategory),
			Rule:        flagConvRule,
			Description: flagConvDescription,
			Severity:    flagConvSeverity,
			Confidence:  flagConvConfidence,
			Tags:        tags,
		}
		if err := store.Put(context.Background(), repositoryID, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Stored convention %s for %s.\n", c.ID, repositoryID)
		return nil
	},
}

// openKnowledge loads config and opens the convention store plus the
// repository the commands operate on.
func openKnowledge() (string, *convention.SQLiteStore, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return "", nil, err
	}
	if cfg.Repository == "" {
		return "", nil, fmt.Errorf("no repository configured: set --repository or the repository config key")
	}
	store, err := convention.OpenSQLite(cfg.KnowledgeDB)
	if err != nil {
		return "", nil, err
	}
	return cfg.Repository, store, nil
}

func init() {
	addSharedFlags(conventionsListCmd)
	addSharedFlags(conventionsAddCmd)

	conventionsAddCmd.Flags().StringVar(&flagConvID, "id", "", "Convention ID")
	conventionsAddCmd.Flags().StringVar(&flagConvCategory, "category", "", "Category (naming, structure, pattern, testing, ...)")
	conventionsAddCmd.Flags().StringVar(&flagConvRule, "rule", "", "Short rule statement")
	conventionsAddCmd.Flags().StringVar(&flagConvDescription, "description", "", "Longer description")
	conventionsAddCmd.Flags().StringVar(&flagConvSeverity, "severity", "warning", "Default severity (error, warning, suggestion)")
	conventionsAddCmd.Flags().Float64Var(&flagConvConfidence, "confidence", 0.8, "Confidence 0-1")
	conventionsAddCmd.Flags().StringVar(&flagConvTags, "tags", "", "Comma-separated tags (e.g. forbid:var)")

	conventionsCmd.AddCommand(conventionsListCmd)
	conventionsCmd.AddCommand(conventionsAddCmd)
}
