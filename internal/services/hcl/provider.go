package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const googleProviderVersion = "~> 5.0"

// ProviderTf generates the terraform/provider configuration file shared by every
// bundle kind. Project and region are referenced through variables so the tfvars file
// stays the single place operators edit; only the zone is emitted literally.
func ProviderTf(zone string) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	terraformBlock := rootBody.AppendNewBlock("terraform", nil)
	terraformBody := terraformBlock.Body()
	terraformBody.SetAttributeValue("required_version", cty.StringVal(">= 1.0"))

	requiredProvidersBlock := terraformBody.AppendNewBlock("required_providers", nil)
	requiredProvidersBody := requiredProvidersBlock.Body()
	requiredProvidersBody.SetAttributeValue("google", cty.ObjectVal(map[string]cty.Value{
		"source":  cty.StringVal("hashicorp/google"),
		"version": cty.StringVal(googleProviderVersion),
	}))

	rootBody.AppendNewline()

	providerBlock := rootBody.AppendNewBlock("provider", []string{"google"})
	providerBody := providerBlock.Body()
	providerBody.SetAttributeRaw("project", TokensForVarReference("project_id"))
	providerBody.SetAttributeRaw("region", TokensForVarReference("region"))
	if zone != "" {
		providerBody.SetAttributeValue("zone", cty.StringVal(zone))
	}

	return string(f.Bytes())
}

// VariableDefinition describes one entry of a bundle's variables file.
type VariableDefinition struct {
	Name        string
	Description string
	Type        string
	Default     string
}

// VariablesTf generates a variables file from the given ordered definitions.
func VariablesTf(definitions []VariableDefinition) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for i, def := range definitions {
		if i > 0 {
			rootBody.AppendNewline()
		}

		variableBlock := rootBody.AppendNewBlock("variable", []string{def.Name})
		variableBody := variableBlock.Body()
		variableBody.SetAttributeValue("description", cty.StringVal(def.Description))
		variableBody.SetAttributeRaw("type", TokensForResourceReference(def.Type))
		variableBody.SetAttributeValue("default", cty.StringVal(def.Default))
	}

	return string(f.Bytes())
}

// StandardVariables returns the variable definitions common to every bundle, plus the
// bundle's logical resource name under nameVariable.
func StandardVariables(projectID, region, environment, nameVariable, nameValue string) []VariableDefinition {
	return []VariableDefinition{
		{
			Name:        "project_id",
			Description: "GCP project ID",
			Type:        "string",
			Default:     projectID,
		},
		{
			Name:        "region",
			Description: "GCP region",
			Type:        "string",
			Default:     region,
		},
		{
			Name:        "environment",
			Description: "Environment name",
			Type:        "string",
			Default:     environment,
		},
		{
			Name:        nameVariable,
			Description: "Logical resource name",
			Type:        "string",
			Default:     nameValue,
		},
	}
}
