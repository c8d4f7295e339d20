package hcl

import (
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrascribe/terrascribe/internal/types"
)

func assertValidHCL(t *testing.T, content, filename string) {
	t.Helper()
	parser := hclparse.NewParser()
	_, diags := parser.ParseHCL([]byte(content), filename)
	require.False(t, diags.HasErrors(), "generated %s should be valid HCL: %s", filename, diags.Error())
}

func TestComputeInstanceMainTf(t *testing.T) {
	content := ComputeInstanceMainTf(ComputeInstanceInput{
		ResourceLabel: "test_server",
		InstanceName:  "test-server",
		MachineType:   "e2-micro",
		Zone:          "us-central1-a",
		Image:         "ubuntu-os-cloud/ubuntu-2204-lts",
		DiskSizeGB:    20,
		NetworkTags:   []string{"terraform-managed"},
		AllowedPorts:  []int{22},
		Environment:   "dev",
	})

	assertValidHCL(t, content, "main.tf")

	assert.Contains(t, content, `resource "google_compute_instance" "test_server"`)
	assert.Contains(t, content, `resource "google_service_account" "test_server_sa"`)
	assert.Contains(t, content, `resource "google_compute_firewall" "test_server_firewall"`)
	assert.Contains(t, content, `name         = "test-server"`)
	assert.Contains(t, content, `machine_type = "e2-micro"`)
	assert.Contains(t, content, `ports    = ["22"]`)
	assert.Contains(t, content, `output "test_server_external_ip"`)
	assert.Contains(t, content, `output "test_server_internal_ip"`)

	assert.Contains(t, content, "startup-script")
	assert.Contains(t, content, "echo provisioned by terrascribe")
	assert.NotContains(t, content, "enable-oslogin")
}

func TestComputeInstanceMainTfOSLogin(t *testing.T) {
	content := ComputeInstanceMainTf(ComputeInstanceInput{
		ResourceLabel: "test_server",
		InstanceName:  "test-server",
		MachineType:   "e2-micro",
		Zone:          "us-central1-a",
		Image:         "ubuntu-os-cloud/ubuntu-2204-lts",
		DiskSizeGB:    20,
		OSLogin:       true,
		NetworkTags:   []string{"terraform-managed"},
		AllowedPorts:  []int{22},
		Environment:   "dev",
	})

	assertValidHCL(t, content, "main.tf")
	assert.Contains(t, content, "enable-oslogin")
	assert.NotContains(t, content, "startup-script")
}

func TestObjectStorageMainTf(t *testing.T) {
	content := ObjectStorageMainTf(ObjectStorageInput{
		ResourceLabel:     "media_assets",
		BucketName:        "media-assets",
		Location:          "EU",
		VersioningEnabled: true,
		Environment:       "dev",
	})

	assertValidHCL(t, content, "main.tf")

	assert.Contains(t, content, `resource "google_storage_bucket" "media_assets"`)
	assert.Contains(t, content, `resource "google_storage_bucket_iam_member" "media_assets_viewer"`)
	assert.Contains(t, content, `location`)
	assert.Contains(t, content, `enabled = true`)
	assert.Contains(t, content, `output "media_assets_url"`)
}

func TestVirtualNetworkMainTf(t *testing.T) {
	content := VirtualNetworkMainTf(VirtualNetworkInput{
		ResourceLabel: "prod_net",
		NetworkName:   "prod-net",
		CIDRRange:     "10.1.0.0/16",
		AllowedPorts:  []int{22, 80, 443},
		Region:        "us-central1",
	})

	assertValidHCL(t, content, "main.tf")

	assert.Contains(t, content, `resource "google_compute_network" "prod_net"`)
	assert.Contains(t, content, `resource "google_compute_subnetwork" "prod_net_subnet"`)
	assert.Contains(t, content, `resource "google_compute_firewall" "prod_net_firewall"`)
	assert.Contains(t, content, `resource "google_compute_router" "prod_net_router"`)
	assert.Contains(t, content, `resource "google_compute_router_nat" "prod_net_nat"`)
	assert.Contains(t, content, `ip_cidr_range = "10.1.0.0/16"`)
	assert.Contains(t, content, `ports    = ["22", "80", "443"]`)
	assert.Contains(t, content, `output "prod_net_network_id"`)
}

func TestProviderTf(t *testing.T) {
	content := ProviderTf("us-central1-a")

	assertValidHCL(t, content, "provider.tf")
	assert.Contains(t, content, `provider "google"`)
	assert.Contains(t, content, "hashicorp/google")
	assert.Contains(t, content, "var.project_id")
	assert.Contains(t, content, "var.region")
	assert.Contains(t, content, `zone    = "us-central1-a"`)

	withoutZone := ProviderTf("")
	assertValidHCL(t, withoutZone, "provider.tf")
	assert.NotContains(t, withoutZone, "zone")
}

func TestVariablesTf(t *testing.T) {
	content := VariablesTf(StandardVariables("my-project", "us-central1", "dev", "instance_name", "test-server"))

	assertValidHCL(t, content, "variables.tf")
	assert.Contains(t, content, `variable "project_id"`)
	assert.Contains(t, content, `variable "region"`)
	assert.Contains(t, content, `variable "environment"`)
	assert.Contains(t, content, `variable "instance_name"`)
	assert.Contains(t, content, `default     = "test-server"`)
}

func TestMappings(t *testing.T) {
	machineType, err := MachineTypeForSizeClass(types.SizeClassHighMemory)
	require.NoError(t, err)
	assert.Equal(t, "e2-highmem-4", machineType)

	_, err = MachineTypeForSizeClass("mega-class")
	var defect *types.RenderDefectError
	assert.ErrorAs(t, err, &defect)

	image, err := ImageForFamily(types.ImageDebianStable)
	require.NoError(t, err)
	assert.Equal(t, "debian-cloud/debian-12", image)

	region, err := RegionForLocation("ASIA")
	require.NoError(t, err)
	assert.Equal(t, "asia-east1", region)

	_, err = RegionForLocation("MOON")
	assert.ErrorAs(t, err, &defect)
}
