package terraform_config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/terrascribe/terrascribe/internal/services/intent"
	"github.com/terrascribe/terrascribe/internal/services/markdown"
	"github.com/terrascribe/terrascribe/internal/services/render"
	"github.com/terrascribe/terrascribe/internal/types"
)

const manifestFileName = "manifest.json"

// struct to hold the options for the terraform config asset generator
type TerraformConfigOpts struct {
	Instruction  string
	OutputDir    string
	ProjectID    string
	Environment  string
	PrintSummary bool
}

type TerraformConfigAssetGenerator struct {
	instruction  string
	outputDir    string
	printSummary bool

	intentService *intent.Service
	renderService *render.Service
}

func NewTerraformConfigAssetGenerator(opts TerraformConfigOpts) *TerraformConfigAssetGenerator {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "terraform_config"
	}

	return &TerraformConfigAssetGenerator{
		instruction:   opts.Instruction,
		outputDir:     outputDir,
		printSummary:  opts.PrintSummary,
		intentService: intent.NewService(),
		renderService: render.NewService(render.Opts{
			ProjectID:   opts.ProjectID,
			Environment: opts.Environment,
		}),
	}
}

func (tc *TerraformConfigAssetGenerator) Run() error {
	slog.Info("🏁 generating terraform config assets", "instruction", tc.instruction)

	spec := tc.intentService.Extract(tc.instruction)
	if spec.Kind == types.KindUnrecognized {
		return fmt.Errorf("could not recognize a resource kind in %q: mention a vm, instance or server for compute, a bucket for storage, or a network or vpc for networking", tc.instruction)
	}
	slog.Info("🔍 recognized resource kind", "kind", spec.Kind.String())

	bundle, err := tc.renderService.Render(spec)
	if err != nil {
		return fmt.Errorf("failed to render terraform bundle: %w", err)
	}

	targetDir := filepath.Join(tc.outputDir, spec.Kind.String())
	slog.Info("📁 creating terraform config directory", "directory", targetDir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create terraform config directory: %w", err)
	}

	for _, file := range bundle.Files() {
		destPath := filepath.Join(targetDir, file.Name)
		if err := os.WriteFile(destPath, []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", destPath, err)
		}
		slog.Info("📝 wrote bundle file", "file", destPath)
	}

	if err := tc.writeManifest(targetDir, spec, bundle); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if tc.printSummary {
		if err := tc.printRunSummary(spec, bundle, targetDir); err != nil {
			slog.Warn("⚠️ failed to render run summary", "error", err)
		}
	}

	slog.Info("✅ terraform config assets generated successfully", "directory", targetDir)

	return nil
}

func (tc *TerraformConfigAssetGenerator) writeManifest(targetDir string, spec types.ResourceSpec, bundle types.TemplateBundle) error {
	manifest := types.Manifest{
		ResourceKind: spec.Kind.String(),
		Instruction:  spec.Instruction,
		Files:        bundle.Names(),
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	manifestPath := filepath.Join(targetDir, manifestFileName)
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

func (tc *TerraformConfigAssetGenerator) printRunSummary(spec types.ResourceSpec, bundle types.TemplateBundle, targetDir string) error {
	rows := make([][]string, 0, bundle.Len())
	for _, name := range bundle.Names() {
		rows = append(rows, []string{name, filepath.Join(targetDir, name)})
	}

	md := markdown.New().
		AddHeading("Terraform Config Generated", 2).
		AddParagraph(fmt.Sprintf("**Instruction**: %s", spec.Instruction)).
		AddParagraph(fmt.Sprintf("**Resource kind**: %s", spec.Kind)).
		AddTable([]string{"File", "Path"}, rows).
		AddParagraph(fmt.Sprintf("Run `terraform init && terraform plan` inside `%s` to review the changes.", targetDir))

	if _, err := md.PrintToTerminal(); err != nil {
		return err
	}

	return nil
}
