package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/config"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/llm"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask an ad-hoc question using the team's conventions as context",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if cfg.Repository == "" {
			fmt.Fprintln(os.Stderr, "Error: no repository configured. Set --repository or the repository config key.")
			exitCode = ExitUsageError
			return nil
		}

		store, err := convention.OpenSQLite(cfg.KnowledgeDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		defer store.Close()

		ctx := context.Background()
		conventions, err := store.GetAllConventions(ctx, cfg.Repository)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		gen, err := llm.New(cfg.Provider, llm.Options{
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		question := strings.Join(args, " ")
		var b strings.Builder
		b.WriteString("Answer the question below for a developer on this team. Ground your answer in the team conventions where they apply.\n\n")
		b.WriteString("Team conventions:\n")
		b.WriteString(convention.PromptSection(conventions))
		fmt.Fprintf(&b, "\nQuestion: %s\n", question)

		answer, err := gen.Generate(ctx, b.String())
		if err != nil {
			if llm.IsAuthError(err) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitAuthError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintln(os.Stdout, strings.TrimSpace(answer))
		return nil
	},
}

func init() {
	addSharedFlags(askCmd)
}
