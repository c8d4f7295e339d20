package serve

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/terrascribe/terrascribe/internal/generators/server"
	"github.com/terrascribe/terrascribe/internal/services/github"
	"github.com/terrascribe/terrascribe/internal/types"
	"github.com/terrascribe/terrascribe/internal/utils"
)

var (
	port        string
	configFile  string
	githubOwner string
	githubRepo  string
	baseBranch  string
)

func NewServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:           "serve",
		Short:         "Run the terrascribe HTTP API",
		Long:          "Start an HTTP server that generates Terraform bundles from natural language instructions and, when GitHub credentials are configured, opens pull requests with the result.",
		SilenceErrors: true,
		RunE:          runServe,
		PreRunE:       preRunServe,
	}

	groups := map[*pflag.FlagSet]string{}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&port, "port", "", "The port to listen on.")
	optionalFlags.StringVar(&configFile, "config", "", "The path to a terrascribe YAML config file.")
	optionalFlags.StringVar(&githubOwner, "github-owner", "", "The GitHub owner of the repository to publish bundles to.")
	optionalFlags.StringVar(&githubRepo, "github-repo", "", "The GitHub repository to publish bundles to.")
	optionalFlags.StringVar(&baseBranch, "base-branch", "", "The branch pull requests are opened against.")
	serveCmd.Flags().AddFlagSet(optionalFlags)
	groups[optionalFlags] = "Optional Flags"

	serveCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		usage := optionalFlags.FlagUsages()
		if usage != "" {
			fmt.Printf("Optional Flags:\n%s\n", usage)
		}

		fmt.Println("The GitHub token is read from the GITHUB_TOKEN environment variable.")

		return nil
	})

	return serveCmd
}

func preRunServe(cmd *cobra.Command, args []string) error {
	return utils.BindEnvToFlags(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := types.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if port != "" {
		cfg.Port = port
	}
	if githubOwner != "" {
		cfg.GitHub.Owner = githubOwner
	}
	if githubRepo != "" {
		cfg.GitHub.Repo = githubRepo
	}
	if baseBranch != "" {
		cfg.GitHub.BaseBranch = baseBranch
	}

	var publisher server.Publisher
	if cfg.GitHub.IsConfigured() {
		ghPublisher, err := github.NewPublisher(github.PublisherOpts{
			Owner:      cfg.GitHub.Owner,
			Repo:       cfg.GitHub.Repo,
			Token:      cfg.GitHub.Token,
			BaseBranch: cfg.GitHub.BaseBranch,
		})
		if err != nil {
			return fmt.Errorf("failed to create github publisher: %w", err)
		}
		publisher = ghPublisher
		slog.Info("🔗 publishing enabled", "owner", cfg.GitHub.Owner, "repo", cfg.GitHub.Repo)
	} else {
		slog.Info("ℹ️ publishing disabled, set github owner, repo and GITHUB_TOKEN to enable")
	}

	srv := server.NewServer(server.ServerOpts{
		Config:    cfg,
		Publisher: publisher,
	})
	if err := srv.Run(); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}

	return nil
}
