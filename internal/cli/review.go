package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/config"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/github"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/llm"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/output"
	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/review"
)

// Shared flags
var (
	flagProvider   string
	flagModel      string
	flagRepository string
	flagKnowledge  string
	flagFormat     string
	flagOut        string
	flagFailOn     string
	flagTimeout    int
	flagNoRedact   bool
	flagOwner      string
	flagRepo       string
	flagDryRun     bool
)

func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagRepository, "repository", "", "Repository ID for convention lookup (default: owner/repo)")
	cmd.Flags().StringVar(&flagKnowledge, "knowledge-db", "", "Path to the convention database")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagRepository != "" {
		m["repository"] = flagRepository
	}
	if flagKnowledge != "" {
		m["knowledgeDb"] = flagKnowledge
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagTimeout > 0 {
		m["timeoutSeconds"] = fmt.Sprintf("%d", flagTimeout)
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review <pr-number>",
	Short: "Review a pull request against team conventions",
	Long:  "Fetch a PR diff from GitHub, review it against the team's conventions, and optionally post the feedback as a PR review.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prNumber, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid PR number %q\n", args[0])
			exitCode = ExitUsageError
			return nil
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if flagNoRedact {
			cfg.Privacy.RedactSecrets = false
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		owner, repo := flagOwner, flagRepo
		if owner == "" || repo == "" {
			detectedOwner, detectedRepo, err := github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\nUse --owner and --repo flags to specify manually.\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if owner == "" {
				owner = detectedOwner
			}
			if repo == "" {
				repo = detectedRepo
			}
		}

		repositoryID := cfg.Repository
		if repositoryID == "" {
			repositoryID = owner + "/" + repo
		}

		ghClient, err := github.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		ctx := context.Background()

		fmt.Fprintf(os.Stderr, "Fetching PR #%d from %s/%s...\n", prNumber, owner, repo)
		pr, err := ghClient.FetchPRDiff(ctx, owner, repo, prNumber)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if len(pr.Files) == 0 {
			fmt.Fprintln(os.Stdout, "PR has no changed files; nothing to review.")
			return nil
		}

		store, err := convention.OpenSQLite(cfg.KnowledgeDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		defer store.Close()

		gen, err := llm.New(cfg.Provider, llm.Options{
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		pipeline := review.NewPipeline(store, gen, review.OrchestratorOptions{
			RedactSecrets: cfg.Privacy.RedactSecrets,
			Logger:        logger,
		})

		res, err := pipeline.Review(ctx, repositoryID, pr, nil)
		if err != nil {
			if llm.IsAuthError(err) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitAuthError
				return nil
			}
			if errors.Is(err, review.ErrNoRepository) {
				fmt.Fprintf(os.Stderr, "Error: %v\nSet --repository or the repository config key.\n", err)
				exitCode = ExitUsageError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if err := output.WriteResult(res, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: %d comments generated, not posting to GitHub.\n", len(res.Comments))
		} else {
			payload := output.BuildPayload(res)
			fmt.Fprintf(os.Stderr, "Posting review (%d inline comments)...\n", len(payload.Comments))
			if err := ghClient.PostReview(ctx, owner, repo, prNumber, payload); err != nil {
				fmt.Fprintf(os.Stderr, "Error posting review: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Review posted to PR #%d.\n", prNumber)
		}

		if cfg.FailOn != "none" && cfg.FailOn != "" {
			for _, c := range res.Comments {
				if review.MeetsThreshold(c.Severity, cfg.FailOn) {
					exitCode = ExitFindings
					return nil
				}
			}
		}

		return nil
	},
}

func init() {
	addSharedFlags(reviewCmd)
	reviewCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, github)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, suggestion, warning, error)")
	reviewCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-generation-call timeout in seconds")
	reviewCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	reviewCmd.Flags().StringVar(&flagOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	reviewCmd.Flags().StringVar(&flagRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	reviewCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Run review but don't post to GitHub")
}
