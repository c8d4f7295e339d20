package validate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	validator "github.com/terrascribe/terrascribe/internal/generators/validate"
	"github.com/terrascribe/terrascribe/internal/utils"
)

var (
	targetDir string
)

func NewValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:           "validate",
		Short:         "Validate a generated Terraform configuration bundle",
		Long:          "Parse every .tf and .tfvars file in a bundle directory and report files that are not valid HCL or still carry template delimiters.",
		SilenceErrors: true,
		RunE:          runValidate,
		PreRunE:       preRunValidate,
	}

	groups := map[*pflag.FlagSet]string{}

	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&targetDir, "dir", "", "The bundle directory to validate.")
	validateCmd.Flags().AddFlagSet(requiredFlags)
	groups[requiredFlags] = "Required Flags"

	validateCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		usage := requiredFlags.FlagUsages()
		if usage != "" {
			fmt.Printf("Required Flags:\n%s\n", usage)
		}

		return nil
	})

	validateCmd.MarkFlagRequired("dir")

	return validateCmd
}

func preRunValidate(cmd *cobra.Command, args []string) error {
	return utils.BindEnvToFlags(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	v := validator.NewValidator(validator.ValidateOpts{
		TargetDir: targetDir,
	})
	if err := v.Run(); err != nil {
		return fmt.Errorf("failed to validate terraform bundle: %w", err)
	}

	return nil
}
