package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const defaultStartupScript = "#!/bin/bash\necho provisioned by terrascribe"

// ComputeInstanceInput carries every value the compute-instance resource file needs,
// already resolved to concrete provider vocabulary.
type ComputeInstanceInput struct {
	ResourceLabel string
	InstanceName  string
	MachineType   string
	Zone          string
	Image         string
	DiskSizeGB    int
	OSLogin       bool
	NetworkTags   []string
	AllowedPorts  []int
	Environment   string
}

// ComputeInstanceMainTf generates the primary resource file for a compute-instance
// bundle: the instance itself, its service account, a firewall for the allowed ports,
// and address outputs.
func ComputeInstanceMainTf(in ComputeInstanceInput) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	saLabel := in.ResourceLabel + "_sa"
	saBlock := rootBody.AppendNewBlock("resource", []string{"google_service_account", saLabel})
	saBody := saBlock.Body()
	saBody.SetAttributeValue("account_id", cty.StringVal(in.InstanceName+"-sa"))
	saBody.SetAttributeValue("display_name", cty.StringVal("Service account for "+in.InstanceName))
	rootBody.AppendNewline()

	instanceBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_instance", in.ResourceLabel})
	instanceBody := instanceBlock.Body()
	instanceBody.SetAttributeValue("name", cty.StringVal(in.InstanceName))
	instanceBody.SetAttributeValue("machine_type", cty.StringVal(in.MachineType))
	instanceBody.SetAttributeValue("zone", cty.StringVal(in.Zone))
	instanceBody.AppendNewline()

	bootDiskBlock := instanceBody.AppendNewBlock("boot_disk", nil)
	initParamsBlock := bootDiskBlock.Body().AppendNewBlock("initialize_params", nil)
	initParamsBody := initParamsBlock.Body()
	initParamsBody.SetAttributeValue("image", cty.StringVal(in.Image))
	initParamsBody.SetAttributeValue("size", cty.NumberIntVal(int64(in.DiskSizeGB)))
	instanceBody.AppendNewline()

	networkInterfaceBlock := instanceBody.AppendNewBlock("network_interface", nil)
	networkInterfaceBody := networkInterfaceBlock.Body()
	networkInterfaceBody.SetAttributeValue("network", cty.StringVal("default"))
	// Empty access_config block requests an ephemeral public IP.
	networkInterfaceBody.AppendNewBlock("access_config", nil)
	instanceBody.AppendNewline()

	serviceAccountBlock := instanceBody.AppendNewBlock("service_account", nil)
	serviceAccountBody := serviceAccountBlock.Body()
	serviceAccountBody.SetAttributeRaw("email", TokensForResourceReference(
		fmt.Sprintf("google_service_account.%s.email", saLabel)))
	serviceAccountBody.SetAttributeRaw("scopes", TokensForStringList([]string{"cloud-platform"}))
	instanceBody.AppendNewline()

	// OS Login replaces the startup script when the instruction asks for ssh access.
	metadata := map[string]cty.Value{"startup-script": cty.StringVal(defaultStartupScript)}
	if in.OSLogin {
		metadata = map[string]cty.Value{"enable-oslogin": cty.StringVal("true")}
	}
	instanceBody.SetAttributeValue("metadata", cty.MapVal(metadata))
	instanceBody.AppendNewline()

	instanceBody.SetAttributeRaw("tags", TokensForStringList(in.NetworkTags))
	instanceBody.SetAttributeValue("labels", cty.ObjectVal(map[string]cty.Value{
		"environment": cty.StringVal(in.Environment),
		"managed_by":  cty.StringVal("terrascribe"),
	}))
	rootBody.AppendNewline()

	firewallLabel := in.ResourceLabel + "_firewall"
	firewallBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_firewall", firewallLabel})
	firewallBody := firewallBlock.Body()
	firewallBody.SetAttributeValue("name", cty.StringVal(in.InstanceName+"-firewall"))
	firewallBody.SetAttributeValue("network", cty.StringVal("default"))
	allowBlock := firewallBody.AppendNewBlock("allow", nil)
	allowBody := allowBlock.Body()
	allowBody.SetAttributeValue("protocol", cty.StringVal("tcp"))
	allowBody.SetAttributeRaw("ports", TokensForPortList(in.AllowedPorts))
	firewallBody.SetAttributeRaw("source_ranges", TokensForStringList([]string{"0.0.0.0/0"}))
	firewallBody.SetAttributeRaw("target_tags", TokensForStringList(in.NetworkTags))
	rootBody.AppendNewline()

	externalOutputBlock := rootBody.AppendNewBlock("output", []string{in.ResourceLabel + "_external_ip"})
	externalOutputBlock.Body().SetAttributeRaw("value", TokensForResourceReference(
		fmt.Sprintf("google_compute_instance.%s.network_interface[0].access_config[0].nat_ip", in.ResourceLabel)))
	rootBody.AppendNewline()

	internalOutputBlock := rootBody.AppendNewBlock("output", []string{in.ResourceLabel + "_internal_ip"})
	internalOutputBlock.Body().SetAttributeRaw("value", TokensForResourceReference(
		fmt.Sprintf("google_compute_instance.%s.network_interface[0].network_ip", in.ResourceLabel)))

	return string(f.Bytes())
}
