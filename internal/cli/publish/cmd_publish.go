package publish

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/terrascribe/terrascribe/internal/services/github"
	"github.com/terrascribe/terrascribe/internal/services/intent"
	"github.com/terrascribe/terrascribe/internal/services/render"
	"github.com/terrascribe/terrascribe/internal/types"
	"github.com/terrascribe/terrascribe/internal/utils"
)

var (
	instruction string
	branchName  string
	configFile  string
	githubOwner string
	githubRepo  string
	baseBranch  string
)

func NewPublishCmd() *cobra.Command {
	publishCmd := &cobra.Command{
		Use:           "publish",
		Short:         "Generate a Terraform bundle and open a pull request with it",
		Long:          "Parse a natural language instruction, render the Terraform bundle and push it to a GitHub repository on a new branch with a pull request for review.",
		SilenceErrors: true,
		RunE:          runPublish,
		PreRunE:       preRunPublish,
	}

	groups := map[*pflag.FlagSet]string{}

	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&instruction, "instruction", "", "The natural language instruction to generate Terraform configuration from.")
	publishCmd.Flags().AddFlagSet(requiredFlags)
	groups[requiredFlags] = "Required Flags"

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&branchName, "branch-name", "", "The branch to publish on. Defaults to a generated terraform-<kind>-<timestamp> name.")
	optionalFlags.StringVar(&configFile, "config", "", "The path to a terrascribe YAML config file.")
	optionalFlags.StringVar(&githubOwner, "github-owner", "", "The GitHub owner of the repository to publish to.")
	optionalFlags.StringVar(&githubRepo, "github-repo", "", "The GitHub repository to publish to.")
	optionalFlags.StringVar(&baseBranch, "base-branch", "", "The branch the pull request is opened against.")
	publishCmd.Flags().AddFlagSet(optionalFlags)
	groups[optionalFlags] = "Optional Flags"

	publishCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{requiredFlags, optionalFlags}
		groupNames := []string{"Required Flags", "Optional Flags"}

		for i, fs := range flagOrder {
			usage := fs.FlagUsages()
			if usage != "" {
				fmt.Printf("%s:\n%s\n", groupNames[i], usage)
			}
		}

		fmt.Println("The GitHub token is read from the GITHUB_TOKEN environment variable.")

		return nil
	})

	publishCmd.MarkFlagRequired("instruction")

	return publishCmd
}

func preRunPublish(cmd *cobra.Command, args []string) error {
	return utils.BindEnvToFlags(cmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := types.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
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

	if err := cfg.ValidateInstruction(instruction); err != nil {
		return err
	}

	if !cfg.GitHub.IsConfigured() {
		return fmt.Errorf("github publishing is not configured: set --github-owner, --github-repo and the GITHUB_TOKEN environment variable")
	}

	spec := intent.NewService().Extract(instruction)
	if spec.Kind == types.KindUnrecognized {
		return fmt.Errorf("could not recognize a resource kind in %q: mention a vm, instance or server for compute, a bucket for storage, or a network or vpc for networking", instruction)
	}

	renderService := render.NewService(render.Opts{
		ProjectID:   cfg.ProjectID,
		Environment: cfg.Environment,
	})
	bundle, err := renderService.Render(spec)
	if err != nil {
		return fmt.Errorf("failed to render terraform bundle: %w", err)
	}

	publisher, err := github.NewPublisher(github.PublisherOpts{
		Owner:      cfg.GitHub.Owner,
		Repo:       cfg.GitHub.Repo,
		Token:      cfg.GitHub.Token,
		BaseBranch: cfg.GitHub.BaseBranch,
	})
	if err != nil {
		return fmt.Errorf("failed to create github publisher: %w", err)
	}

	result, err := publisher.Publish(cmd.Context(), spec, bundle, github.BranchName(spec.Kind, branchName, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to publish bundle: %w", err)
	}

	fmt.Printf("\n%s %s\n", color.CyanString("Pull request:"), color.GreenString(result.PRURL))
	fmt.Printf("%s %s\n\n", color.CyanString("Branch:"), color.WhiteString(result.BranchName))

	return nil
}
