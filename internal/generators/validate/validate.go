package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// struct to hold the options for the terraform config validator
type ValidateOpts struct {
	TargetDir string
}

// Validator checks a generated bundle directory: every .tf file must parse as HCL
// and no file may carry leftover template delimiters from a failed render.
type Validator struct {
	targetDir string
}

type fileResult struct {
	path     string
	problems []string
}

func NewValidator(opts ValidateOpts) *Validator {
	return &Validator{
		targetDir: opts.TargetDir,
	}
}

func (v *Validator) Run() error {
	results, err := v.validateDir()
	if err != nil {
		return err
	}

	if len(results) == 0 {
		return fmt.Errorf("no terraform files found in %s", v.targetDir)
	}

	failed := 0
	for _, result := range results {
		if len(result.problems) == 0 {
			fmt.Printf("%s %s\n", color.GreenString("✔"), result.path)
			continue
		}

		failed++
		fmt.Printf("%s %s\n", color.RedString("✘"), result.path)
		for _, problem := range result.problems {
			fmt.Printf("    %s\n", color.HiBlackString(problem))
		}
	}

	fmt.Printf("\n%s\n", color.CyanString("Checked %d files, %d failed", len(results), failed))

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d files", failed, len(results))
	}

	return nil
}

func (v *Validator) validateDir() ([]fileResult, error) {
	var results []fileResult

	err := filepath.WalkDir(v.targetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch {
		case strings.HasSuffix(path, ".tf"), strings.HasSuffix(path, ".tfvars"):
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			results = append(results, fileResult{path: path, problems: checkFile(path, content)})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", v.targetDir, err)
	}

	return results, nil
}

func checkFile(path string, content []byte) []string {
	var problems []string

	if strings.Contains(string(content), "{{") || strings.Contains(string(content), "}}") {
		problems = append(problems, "leftover template delimiters, the render likely failed partway")
	}

	parser := hclparse.NewParser()
	_, diags := parser.ParseHCL(content, filepath.Base(path))
	for _, diag := range diags {
		problems = append(problems, diag.Error())
	}

	return problems
}
