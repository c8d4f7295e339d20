package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

type VirtualNetworkInput struct {
	ResourceLabel string
	NetworkName   string
	CIDRRange     string
	AllowedPorts  []int
	Region        string
}

// VirtualNetworkMainTf generates the primary resource file for a virtual-network
// bundle: network, subnetwork, firewall, router, and NAT, plus the network ID output.
func VirtualNetworkMainTf(in VirtualNetworkInput) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	networkBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_network", in.ResourceLabel})
	networkBody := networkBlock.Body()
	networkBody.SetAttributeValue("name", cty.StringVal(in.NetworkName))
	networkBody.SetAttributeValue("auto_create_subnetworks", cty.BoolVal(false))
	rootBody.AppendNewline()

	networkRef := fmt.Sprintf("google_compute_network.%s", in.ResourceLabel)

	subnetLabel := in.ResourceLabel + "_subnet"
	subnetBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_subnetwork", subnetLabel})
	subnetBody := subnetBlock.Body()
	subnetBody.SetAttributeValue("name", cty.StringVal(in.NetworkName+"-subnet"))
	subnetBody.SetAttributeValue("ip_cidr_range", cty.StringVal(in.CIDRRange))
	subnetBody.SetAttributeValue("region", cty.StringVal(in.Region))
	subnetBody.SetAttributeRaw("network", TokensForResourceReference(networkRef+".id"))
	rootBody.AppendNewline()

	firewallLabel := in.ResourceLabel + "_firewall"
	firewallBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_firewall", firewallLabel})
	firewallBody := firewallBlock.Body()
	firewallBody.SetAttributeValue("name", cty.StringVal(in.NetworkName+"-firewall"))
	firewallBody.SetAttributeRaw("network", TokensForResourceReference(networkRef+".name"))
	allowBlock := firewallBody.AppendNewBlock("allow", nil)
	allowBody := allowBlock.Body()
	allowBody.SetAttributeValue("protocol", cty.StringVal("tcp"))
	allowBody.SetAttributeRaw("ports", TokensForPortList(in.AllowedPorts))
	firewallBody.SetAttributeRaw("source_ranges", TokensForStringList([]string{"0.0.0.0/0"}))
	firewallBody.SetAttributeRaw("target_tags", TokensForStringList([]string{"web-server"}))
	rootBody.AppendNewline()

	routerLabel := in.ResourceLabel + "_router"
	routerBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_router", routerLabel})
	routerBody := routerBlock.Body()
	routerBody.SetAttributeValue("name", cty.StringVal(in.NetworkName+"-router"))
	routerBody.SetAttributeValue("region", cty.StringVal(in.Region))
	routerBody.SetAttributeRaw("network", TokensForResourceReference(networkRef+".id"))
	rootBody.AppendNewline()

	natLabel := in.ResourceLabel + "_nat"
	natBlock := rootBody.AppendNewBlock("resource", []string{"google_compute_router_nat", natLabel})
	natBody := natBlock.Body()
	natBody.SetAttributeValue("name", cty.StringVal(in.NetworkName+"-nat"))
	natBody.SetAttributeRaw("router", TokensForResourceReference(
		fmt.Sprintf("google_compute_router.%s.name", routerLabel)))
	natBody.SetAttributeValue("region", cty.StringVal(in.Region))
	natBody.SetAttributeValue("nat_ip_allocate_option", cty.StringVal("AUTO_ONLY"))
	natBody.SetAttributeValue("source_subnetwork_ip_ranges_to_nat", cty.StringVal("ALL_SUBNETWORKS_ALL_IP_RANGES"))
	rootBody.AppendNewline()

	idOutputBlock := rootBody.AppendNewBlock("output", []string{in.ResourceLabel + "_network_id"})
	idOutputBlock.Body().SetAttributeRaw("value", TokensForResourceReference(networkRef+".id"))

	return string(f.Bytes())
}
