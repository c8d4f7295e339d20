package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FormatHclResourceName ensures that resource identifiers are valid HCL labels -
// 'snake_case', no dashes.
func FormatHclResourceName(resourceName string) string {
	return strings.ToLower(strings.ReplaceAll(resourceName, "-", "_"))
}

// RegionFromZone derives the region from a zone name, e.g. "us-central1-a" ->
// "us-central1". Zones without a trailing letter suffix come back unchanged.
func RegionFromZone(zone string) string {
	idx := strings.LastIndex(zone, "-")
	if idx <= 0 {
		return zone
	}
	suffix := zone[idx+1:]
	if len(suffix) != 1 {
		return zone
	}
	return zone[:idx]
}

// sets flag values from corresponding environment variables if flags weren't explicitly provided
func BindEnvToFlags(cmd *cobra.Command) error {
	v := viper.New()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		flagName := f.Name

		// Convert flag name to environment variable name
		// e.g., "output-dir" -> "OUTPUT_DIR"
		envVarName := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		v.BindEnv(flagName, envVarName)

		// If the flag wasn't explicitly set via command line
		// AND
		// there's a value available from environment,
		// THEN
		// set the flag value from the environment
		if !f.Changed && v.IsSet(flagName) {
			val := v.Get(flagName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
		}
	})

	return nil
}
