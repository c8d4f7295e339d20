package generate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/terrascribe/terrascribe/internal/generators/create_asset/terraform_config"
	"github.com/terrascribe/terrascribe/internal/types"
	"github.com/terrascribe/terrascribe/internal/utils"
)

var (
	instruction string
	outputDir   string
	projectID   string
	environment string
	configFile  string
	summary     bool
)

func NewGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:           "generate",
		Short:         "Generate a Terraform configuration bundle from a natural language instruction",
		Long:          "Parse a natural language instruction, recognize the infrastructure resource it describes and write a ready-to-plan Terraform bundle to disk.",
		SilenceErrors: true,
		RunE:          runGenerate,
		PreRunE:       preRunGenerate,
	}

	groups := map[*pflag.FlagSet]string{}

	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&instruction, "instruction", "", "The natural language instruction to generate Terraform configuration from.")
	generateCmd.Flags().AddFlagSet(requiredFlags)
	groups[requiredFlags] = "Required Flags"

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&outputDir, "output-dir", "", "The directory to write the generated bundle to.")
	optionalFlags.StringVar(&projectID, "project-id", "", "The GCP project id to reference in the generated configuration.")
	optionalFlags.StringVar(&environment, "environment", "", "The environment label for the generated resources.")
	optionalFlags.StringVar(&configFile, "config", "", "The path to a terrascribe YAML config file.")
	optionalFlags.BoolVar(&summary, "print-summary", false, "Print a rendered summary of the generated bundle.")
	generateCmd.Flags().AddFlagSet(optionalFlags)
	groups[optionalFlags] = "Optional Flags"

	generateCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{requiredFlags, optionalFlags}
		groupNames := []string{"Required Flags", "Optional Flags"}

		for i, fs := range flagOrder {
			usage := fs.FlagUsages()
			if usage != "" {
				fmt.Printf("%s:\n%s\n", groupNames[i], usage)
			}
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	generateCmd.MarkFlagRequired("instruction")

	return generateCmd
}

func preRunGenerate(cmd *cobra.Command, args []string) error {
	return utils.BindEnvToFlags(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := parseGenerateOpts()
	if err != nil {
		return fmt.Errorf("failed to parse generate options: %w", err)
	}

	generator := terraform_config.NewTerraformConfigAssetGenerator(*opts)
	if err := generator.Run(); err != nil {
		return fmt.Errorf("failed to run terraform config generator: %w", err)
	}

	return nil
}

func parseGenerateOpts() (*terraform_config.TerraformConfigOpts, error) {
	cfg, err := types.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.ValidateInstruction(instruction); err != nil {
		return nil, err
	}

	if projectID == "" {
		projectID = cfg.ProjectID
	}
	if environment == "" {
		environment = cfg.Environment
	}

	return &terraform_config.TerraformConfigOpts{
		Instruction:  instruction,
		OutputDir:    outputDir,
		ProjectID:    projectID,
		Environment:  environment,
		PrintSummary: summary,
	}, nil
}
