package types

import (
	"fmt"
)

// ResourceKind is the category of infrastructure a resource specification describes.
type ResourceKind int

const (
	KindUnrecognized    ResourceKind = iota // no keyword matched the instruction
	KindComputeInstance                     // GCP compute instance
	KindObjectStorage                       // GCP storage bucket
	KindVirtualNetwork                      // GCP VPC network
)

func (k ResourceKind) String() string {
	switch k {
	case KindComputeInstance:
		return "compute-instance"
	case KindObjectStorage:
		return "object-storage"
	case KindVirtualNetwork:
		return "virtual-network"
	default:
		return "unrecognized"
	}
}

func (k ResourceKind) IsValid() bool {
	switch k {
	case KindComputeInstance, KindObjectStorage, KindVirtualNetwork:
		return true
	}
	return false
}

func ToResourceKind(input string) (ResourceKind, error) {
	switch input {
	case "compute-instance":
		return KindComputeInstance, nil
	case "object-storage":
		return KindObjectStorage, nil
	case "virtual-network":
		return KindVirtualNetwork, nil
	case "unrecognized":
		return KindUnrecognized, nil
	default:
		return KindUnrecognized, fmt.Errorf("invalid resource kind: %s", input)
	}
}

// Parameter names used in ResourceSpec.Params.
const (
	ParamMachineSizeClass  = "machine_size_class"
	ParamImageFamily       = "image_family"
	ParamInstanceName      = "instance_name"
	ParamZone              = "zone"
	ParamDiskSizeGB        = "disk_size_gb"
	ParamOSLoginEnabled    = "os_login_enabled"
	ParamNetworkTags       = "network_tags"
	ParamAllowedPorts      = "allowed_ports"
	ParamBucketName        = "bucket_name"
	ParamLocation          = "location"
	ParamVersioningEnabled = "versioning_enabled"
	ParamNetworkName       = "network_name"
	ParamCIDRRange         = "cidr_range"
	ParamRegion            = "region"
)

// Machine size classes assigned by the intent extractor.
const (
	SizeClassLarge      = "large-class"
	SizeClassHighMemory = "high-memory-class"
	SizeClassMicro      = "micro-class"
)

// Image families assigned by the intent extractor.
const (
	ImageUbuntuLTS     = "ubuntu-lts"
	ImageCentOS7       = "centos-7"
	ImageWindowsServer = "windows-server"
	ImageDebianStable  = "debian-stable"
)

// requiredParamsByKind enumerates the full parameter schema per resource kind. The
// extractor always populates every entry; the renderer treats a missing entry as a
// contract violation.
var requiredParamsByKind = map[ResourceKind][]string{
	KindComputeInstance: {
		ParamMachineSizeClass,
		ParamImageFamily,
		ParamInstanceName,
		ParamZone,
		ParamDiskSizeGB,
		ParamOSLoginEnabled,
		ParamNetworkTags,
		ParamAllowedPorts,
	},
	KindObjectStorage: {
		ParamBucketName,
		ParamLocation,
		ParamVersioningEnabled,
	},
	KindVirtualNetwork: {
		ParamNetworkName,
		ParamCIDRRange,
		ParamAllowedPorts,
		ParamRegion,
	},
}

// RequiredParams returns the parameter schema for the given kind. Unrecognized kinds
// have an empty schema.
func RequiredParams(kind ResourceKind) []string {
	return requiredParamsByKind[kind]
}

// ResourceSpec is the structured result of parsing one instruction. It is constructed
// once by the intent extractor, fully populated, and never mutated afterwards.
type ResourceSpec struct {
	Kind        ResourceKind
	Params      Params
	Instruction string
}

// Params maps parameter names to their extracted (or defaulted) values. The typed
// accessors fail with a RenderDefectError when a key is missing or holds the wrong
// type, so extractor bugs surface at render time instead of producing broken output.
type Params map[string]any

func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", &RenderDefectError{Reason: fmt.Sprintf("required parameter %q is missing", key)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &RenderDefectError{Reason: fmt.Sprintf("parameter %q is %T, expected string", key, v)}
	}
	return s, nil
}

func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, &RenderDefectError{Reason: fmt.Sprintf("required parameter %q is missing", key)}
	}
	n, ok := v.(int)
	if !ok {
		return 0, &RenderDefectError{Reason: fmt.Sprintf("parameter %q is %T, expected int", key, v)}
	}
	return n, nil
}

func (p Params) Bool(key string) (bool, error) {
	v, ok := p[key]
	if !ok {
		return false, &RenderDefectError{Reason: fmt.Sprintf("required parameter %q is missing", key)}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &RenderDefectError{Reason: fmt.Sprintf("parameter %q is %T, expected bool", key, v)}
	}
	return b, nil
}

func (p Params) Ints(key string) ([]int, error) {
	v, ok := p[key]
	if !ok {
		return nil, &RenderDefectError{Reason: fmt.Sprintf("required parameter %q is missing", key)}
	}
	ns, ok := v.([]int)
	if !ok {
		return nil, &RenderDefectError{Reason: fmt.Sprintf("parameter %q is %T, expected []int", key, v)}
	}
	return ns, nil
}

func (p Params) Strings(key string) ([]string, error) {
	v, ok := p[key]
	if !ok {
		return nil, &RenderDefectError{Reason: fmt.Sprintf("required parameter %q is missing", key)}
	}
	ss, ok := v.([]string)
	if !ok {
		return nil, &RenderDefectError{Reason: fmt.Sprintf("parameter %q is %T, expected []string", key, v)}
	}
	return ss, nil
}

// Manifest describes a bundle written to disk alongside its files.
type Manifest struct {
	ResourceKind string   `json:"resource_kind"`
	Instruction  string   `json:"instruction"`
	Files        []string `json:"files"`
}
