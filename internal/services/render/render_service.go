package render

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/terrascribe/terrascribe/internal/services/hcl"
	"github.com/terrascribe/terrascribe/internal/services/markdown"
	"github.com/terrascribe/terrascribe/internal/types"
	"github.com/terrascribe/terrascribe/internal/utils"
)

//go:embed assets
var assetsFS embed.FS

// File names produced for every supported resource kind, in render order.
const (
	FileProvider  = "provider.tf"
	FileMain      = "main.tf"
	FileVariables = "variables.tf"
	FileTfvars    = "terraform.tfvars"
	FileReadme    = "README.md"
)

// BundleFileNames returns the fixed, ordered file list the renderer produces for a
// supported kind. The set is total: a bundle either has all of these files or the
// render call failed.
func BundleFileNames(kind types.ResourceKind) ([]string, error) {
	if !kind.IsValid() {
		return nil, &types.UnsupportedResourceKindError{Kind: kind}
	}
	return []string{FileProvider, FileMain, FileVariables, FileTfvars, FileReadme}, nil
}

type Opts struct {
	ProjectID   string
	Environment string
}

// Service turns one fully-populated resource specification into a template bundle. It
// performs no I/O and is safe for concurrent use.
type Service struct {
	projectID   string
	environment string
	tfvarsTmpl  *template.Template
}

func NewService(opts Opts) *Service {
	projectID := opts.ProjectID
	if projectID == "" {
		projectID = types.DefaultProjectID
	}
	environment := opts.Environment
	if environment == "" {
		environment = types.DefaultEnvironment
	}

	// The template ships inside the binary; a parse failure is a build defect, not a
	// runtime condition.
	tmplContent, err := assetsFS.ReadFile("assets/terraform.tfvars.go.tmpl")
	if err != nil {
		panic(fmt.Sprintf("embedded tfvars template missing: %v", err))
	}
	tmpl, err := template.New("tfvars").Option("missingkey=error").Parse(string(tmplContent))
	if err != nil {
		panic(fmt.Sprintf("embedded tfvars template invalid: %v", err))
	}

	return &Service{
		projectID:   projectID,
		environment: environment,
		tfvarsTmpl:  tmpl,
	}
}

// Render produces the complete bundle for the given specification. It fails with
// UnsupportedResourceKindError for unrecognized kinds and RenderDefectError when the
// specification violates the extractor's total-population contract. A bundle is either
// complete or absent; no partial bundles are returned.
func (s *Service) Render(spec types.ResourceSpec) (types.TemplateBundle, error) {
	if !spec.Kind.IsValid() {
		return types.TemplateBundle{}, &types.UnsupportedResourceKindError{Kind: spec.Kind}
	}

	for _, param := range types.RequiredParams(spec.Kind) {
		if _, ok := spec.Params[param]; !ok {
			return types.TemplateBundle{}, &types.RenderDefectError{
				Reason: fmt.Sprintf("required parameter %q is missing for kind %s", param, spec.Kind),
			}
		}
	}

	var (
		bundle types.TemplateBundle
		err    error
	)
	switch spec.Kind {
	case types.KindComputeInstance:
		bundle, err = s.renderComputeInstance(spec)
	case types.KindObjectStorage:
		bundle, err = s.renderObjectStorage(spec)
	case types.KindVirtualNetwork:
		bundle, err = s.renderVirtualNetwork(spec)
	}
	if err != nil {
		return types.TemplateBundle{}, err
	}

	if err := scanForUnresolvedPlaceholders(bundle); err != nil {
		return types.TemplateBundle{}, err
	}

	return bundle, nil
}

func (s *Service) renderComputeInstance(spec types.ResourceSpec) (types.TemplateBundle, error) {
	params := spec.Params

	instanceName, err := params.String(types.ParamInstanceName)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	sizeClass, err := params.String(types.ParamMachineSizeClass)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	imageFamily, err := params.String(types.ParamImageFamily)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	zone, err := params.String(types.ParamZone)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	diskSizeGB, err := params.Int(types.ParamDiskSizeGB)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	osLogin, err := params.Bool(types.ParamOSLoginEnabled)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	networkTags, err := params.Strings(types.ParamNetworkTags)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	allowedPorts, err := params.Ints(types.ParamAllowedPorts)
	if err != nil {
		return types.TemplateBundle{}, err
	}

	machineType, err := hcl.MachineTypeForSizeClass(sizeClass)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	image, err := hcl.ImageForFamily(imageFamily)
	if err != nil {
		return types.TemplateBundle{}, err
	}

	region := utils.RegionFromZone(zone)
	mainTf := hcl.ComputeInstanceMainTf(hcl.ComputeInstanceInput{
		ResourceLabel: utils.FormatHclResourceName(instanceName),
		InstanceName:  instanceName,
		MachineType:   machineType,
		Zone:          zone,
		Image:         image,
		DiskSizeGB:    diskSizeGB,
		OSLogin:       osLogin,
		NetworkTags:   networkTags,
		AllowedPorts:  allowedPorts,
		Environment:   s.environment,
	})

	return s.assembleBundle(spec, bundleInputs{
		mainTf:       mainTf,
		region:       region,
		zone:         zone,
		nameVariable: types.ParamInstanceName,
		resourceName: instanceName,
	})
}

func (s *Service) renderObjectStorage(spec types.ResourceSpec) (types.TemplateBundle, error) {
	params := spec.Params

	bucketName, err := params.String(types.ParamBucketName)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	location, err := params.String(types.ParamLocation)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	versioningEnabled, err := params.Bool(types.ParamVersioningEnabled)
	if err != nil {
		return types.TemplateBundle{}, err
	}

	region, err := hcl.RegionForLocation(location)
	if err != nil {
		return types.TemplateBundle{}, err
	}

	mainTf := hcl.ObjectStorageMainTf(hcl.ObjectStorageInput{
		ResourceLabel:     utils.FormatHclResourceName(bucketName),
		BucketName:        bucketName,
		Location:          location,
		VersioningEnabled: versioningEnabled,
		Environment:       s.environment,
	})

	return s.assembleBundle(spec, bundleInputs{
		mainTf:       mainTf,
		region:       region,
		nameVariable: types.ParamBucketName,
		resourceName: bucketName,
	})
}

func (s *Service) renderVirtualNetwork(spec types.ResourceSpec) (types.TemplateBundle, error) {
	params := spec.Params

	networkName, err := params.String(types.ParamNetworkName)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	cidrRange, err := params.String(types.ParamCIDRRange)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	allowedPorts, err := params.Ints(types.ParamAllowedPorts)
	if err != nil {
		return types.TemplateBundle{}, err
	}
	region, err := params.String(types.ParamRegion)
	if err != nil {
		return types.TemplateBundle{}, err
	}

	mainTf := hcl.VirtualNetworkMainTf(hcl.VirtualNetworkInput{
		ResourceLabel: utils.FormatHclResourceName(networkName),
		NetworkName:   networkName,
		CIDRRange:     cidrRange,
		AllowedPorts:  allowedPorts,
		Region:        region,
	})

	return s.assembleBundle(spec, bundleInputs{
		mainTf:       mainTf,
		region:       region,
		nameVariable: types.ParamNetworkName,
		resourceName: networkName,
	})
}

type bundleInputs struct {
	mainTf       string
	region       string
	zone         string
	nameVariable string
	resourceName string
}

func (s *Service) assembleBundle(spec types.ResourceSpec, in bundleInputs) (types.TemplateBundle, error) {
	tfvars, err := s.renderTfvars(spec.Instruction, in)
	if err != nil {
		return types.TemplateBundle{}, err
	}

	header := fmt.Sprintf("# %s - generated from: %s\n\n", spec.Kind, sanitizeEcho(spec.Instruction))

	var bundle types.TemplateBundle
	bundle.Add(FileProvider, hcl.ProviderTf(in.zone))
	bundle.Add(FileMain, header+in.mainTf)
	bundle.Add(FileVariables, hcl.VariablesTf(
		hcl.StandardVariables(s.projectID, in.region, s.environment, in.nameVariable, in.resourceName)))
	bundle.Add(FileTfvars, tfvars)
	bundle.Add(FileReadme, s.renderReadme(spec, in))

	return bundle, nil
}

func (s *Service) renderTfvars(instruction string, in bundleInputs) (string, error) {
	data := map[string]string{
		"Instruction":  sanitizeEcho(instruction),
		"ProjectID":    s.projectID,
		"Region":       in.region,
		"Environment":  s.environment,
		"NameVariable": in.nameVariable,
		"ResourceName": in.resourceName,
	}

	var buf strings.Builder
	if err := s.tfvarsTmpl.Execute(&buf, data); err != nil {
		return "", &types.RenderDefectError{File: FileTfvars, Reason: err.Error()}
	}
	return buf.String(), nil
}

func (s *Service) renderReadme(spec types.ResourceSpec, in bundleInputs) string {
	md := markdown.New().
		AddHeading("Terraform Infrastructure", 1).
		AddParagraph(fmt.Sprintf("Generated by terrascribe from instruction: %q", sanitizeEcho(spec.Instruction))).
		AddHeading("Resources", 2).
		AddTable(
			[]string{"Property", "Value"},
			[][]string{
				{"Kind", spec.Kind.String()},
				{"Name", in.resourceName},
				{"Region", in.region},
				{"Environment", s.environment},
			},
		).
		AddHeading("Usage", 2).
		AddCodeBlock("terraform init\nterraform plan\nterraform apply", "bash").
		AddHeading("Generated Files", 2).
		AddTable(
			[]string{"File", "Purpose"},
			[][]string{
				{FileProvider, "Terraform and provider configuration"},
				{FileMain, "Resource definitions"},
				{FileVariables, "Variable declarations"},
				{FileTfvars, "Variable values"},
			},
		)

	return md.String()
}

// sanitizeEcho keeps user text safe to embed into file comments: template delimiters
// would trip the post-render placeholder scan, and newlines would break comment lines.
func sanitizeEcho(instruction string) string {
	cleaned := strings.NewReplacer("{", "", "}", "", "\n", " ", "\r", " ").Replace(instruction)
	return strings.TrimSpace(cleaned)
}

// scanForUnresolvedPlaceholders verifies that no template delimiter survived
// substitution anywhere in the bundle. A hit means the renderer itself is broken.
func scanForUnresolvedPlaceholders(bundle types.TemplateBundle) error {
	for _, file := range bundle.Files() {
		for _, delimiter := range []string{"{{", "}}"} {
			if strings.Contains(file.Content, delimiter) {
				return &types.RenderDefectError{
					File:   file.Name,
					Reason: fmt.Sprintf("unresolved placeholder delimiter %q in rendered output", delimiter),
				}
			}
		}
	}
	return nil
}
