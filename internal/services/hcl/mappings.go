package hcl

import (
	"github.com/terrascribe/terrascribe/internal/types"
)

// Provider vocabulary tables. Initialized once, never mutated; the extractor's
// abstract classes are resolved to concrete GCP values only at render time.
var (
	machineTypesBySizeClass = map[string]string{
		types.SizeClassLarge:      "e2-standard-4",
		types.SizeClassHighMemory: "e2-highmem-4",
		types.SizeClassMicro:      "e2-micro",
	}

	imagesByFamily = map[string]string{
		types.ImageUbuntuLTS:     "ubuntu-os-cloud/ubuntu-2204-lts",
		types.ImageCentOS7:       "centos-cloud/centos-7",
		types.ImageWindowsServer: "windows-cloud/windows-server-2019",
		types.ImageDebianStable:  "debian-cloud/debian-12",
	}

	regionsByLocation = map[string]string{
		"US":   "us-central1",
		"EU":   "europe-west1",
		"ASIA": "asia-east1",
	}
)

// MachineTypeForSizeClass resolves a size class to a GCP machine type. An unknown
// class means the extractor handed over something outside its own vocabulary.
func MachineTypeForSizeClass(sizeClass string) (string, error) {
	machineType, ok := machineTypesBySizeClass[sizeClass]
	if !ok {
		return "", &types.RenderDefectError{Reason: "unknown machine size class: " + sizeClass}
	}
	return machineType, nil
}

func ImageForFamily(family string) (string, error) {
	image, ok := imagesByFamily[family]
	if !ok {
		return "", &types.RenderDefectError{Reason: "unknown image family: " + family}
	}
	return image, nil
}

func RegionForLocation(location string) (string, error) {
	region, ok := regionsByLocation[location]
	if !ok {
		return "", &types.RenderDefectError{Reason: "unknown storage location: " + location}
	}
	return region, nil
}
