package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrascribe/terrascribe/internal/types"
)

func TestExtract_ResourceKindDetection(t *testing.T) {
	tests := []struct {
		name         string
		instruction  string
		expectedKind types.ResourceKind
	}{
		{
			name:         "vm keyword maps to compute instance",
			instruction:  "create a vm",
			expectedKind: types.KindComputeInstance,
		},
		{
			name:         "server keyword maps to compute instance",
			instruction:  "spin up a web server",
			expectedKind: types.KindComputeInstance,
		},
		{
			name:         "hosting keyword maps to compute instance",
			instruction:  "set up web hosting",
			expectedKind: types.KindComputeInstance,
		},
		{
			name:         "bucket keyword maps to object storage",
			instruction:  "create a bucket for logs",
			expectedKind: types.KindObjectStorage,
		},
		{
			name:         "storage keyword maps to object storage",
			instruction:  "I need some storage",
			expectedKind: types.KindObjectStorage,
		},
		{
			name:         "vpc keyword maps to virtual network",
			instruction:  "set up a vpc",
			expectedKind: types.KindVirtualNetwork,
		},
		{
			name:         "network keyword maps to virtual network",
			instruction:  "provision a network",
			expectedKind: types.KindVirtualNetwork,
		},
		{
			name:         "compute group wins over storage group on tie",
			instruction:  "a server with attached storage",
			expectedKind: types.KindComputeInstance,
		},
		{
			name:         "storage group wins over network group on tie",
			instruction:  "bucket inside my vpc",
			expectedKind: types.KindObjectStorage,
		},
		{
			name:         "no keyword yields unrecognized",
			instruction:  "gibberish xyz",
			expectedKind: types.KindUnrecognized,
		},
		{
			name:         "empty string yields unrecognized",
			instruction:  "",
			expectedKind: types.KindUnrecognized,
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := svc.Extract(tt.instruction)
			assert.Equal(t, tt.expectedKind, spec.Kind)
		})
	}
}

func TestExtract_UnrecognizedHasEmptyParams(t *testing.T) {
	spec := NewService().Extract("gibberish xyz")

	assert.Equal(t, types.KindUnrecognized, spec.Kind)
	assert.Empty(t, spec.Params)
}

func TestExtract_Totality(t *testing.T) {
	instructions := []string{
		"create a vm",
		"create a large ubuntu server named web-01 with 100 gb disk",
		"create backup storage in europe",
		"bucket called media",
		"set up a network with 10.1.0.0/16 for web traffic",
		"vpc named prod-net",
	}

	svc := NewService()
	for _, instruction := range instructions {
		t.Run(instruction, func(t *testing.T) {
			spec := svc.Extract(instruction)
			require.True(t, spec.Kind.IsValid())

			for _, param := range types.RequiredParams(spec.Kind) {
				value, ok := spec.Params[param]
				assert.True(t, ok, "parameter %q should be populated", param)
				assert.NotNil(t, value, "parameter %q should be non-nil", param)
			}
		})
	}
}

func TestExtract_Determinism(t *testing.T) {
	instructions := []string{
		"create a small Ubuntu VM instance named test-server",
		"Set up web hosting infrastructure",
		"Create backup storage",
		"gibberish xyz",
		"",
	}

	svc := NewService()
	for _, instruction := range instructions {
		first := svc.Extract(instruction)
		second := svc.Extract(instruction)
		assert.Equal(t, first, second, "extract(%q) should be deterministic", instruction)
	}
}

func TestExtract_CaseInsensitivity(t *testing.T) {
	// Only keyword-relevant content: literal name tokens follow their own rule and are
	// covered separately.
	instruction := "create a large ubuntu web server"

	svc := NewService()
	lower := svc.Extract(strings.ToLower(instruction))
	upper := svc.Extract(strings.ToUpper(instruction))
	mixed := svc.Extract("Create A Large Ubuntu Web Server")

	assert.Equal(t, lower.Kind, upper.Kind)
	assert.Equal(t, lower.Params, upper.Params)
	assert.Equal(t, lower.Params, mixed.Params)
}

func TestExtract_MachineSizeClassLadder(t *testing.T) {
	tests := []struct {
		name          string
		instruction   string
		expectedClass string
	}{
		{
			name:          "large maps to large class",
			instruction:   "create a large server",
			expectedClass: types.SizeClassLarge,
		},
		{
			name:          "powerful maps to large class",
			instruction:   "a powerful vm please",
			expectedClass: types.SizeClassLarge,
		},
		{
			name:          "database outranks large",
			instruction:   "create a large database server",
			expectedClass: types.SizeClassHighMemory,
		},
		{
			name:          "db shorthand maps to high memory",
			instruction:   "db server",
			expectedClass: types.SizeClassHighMemory,
		},
		{
			name:          "small maps to micro class",
			instruction:   "create a small vm",
			expectedClass: types.SizeClassMicro,
		},
		{
			name:          "no size keyword defaults to micro class",
			instruction:   "create a vm",
			expectedClass: types.SizeClassMicro,
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := svc.Extract(tt.instruction)
			require.Equal(t, types.KindComputeInstance, spec.Kind)
			assert.Equal(t, tt.expectedClass, spec.Params[types.ParamMachineSizeClass])
		})
	}
}

func TestExtract_ImageFamilyLadder(t *testing.T) {
	tests := []struct {
		name           string
		instruction    string
		expectedFamily string
	}{
		{
			name:           "ubuntu",
			instruction:    "create an ubuntu vm",
			expectedFamily: types.ImageUbuntuLTS,
		},
		{
			name:           "centos",
			instruction:    "create a centos server",
			expectedFamily: types.ImageCentOS7,
		},
		{
			name:           "windows",
			instruction:    "create a windows instance",
			expectedFamily: types.ImageWindowsServer,
		},
		{
			name:           "default is debian",
			instruction:    "create a vm",
			expectedFamily: types.ImageDebianStable,
		},
		{
			name:           "ubuntu outranks windows per ladder order",
			instruction:    "create an ubuntu vm not windows",
			expectedFamily: types.ImageUbuntuLTS,
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := svc.Extract(tt.instruction)
			assert.Equal(t, tt.expectedFamily, spec.Params[types.ParamImageFamily])
		})
	}
}

func TestExtract_PortUnion(t *testing.T) {
	tests := []struct {
		name          string
		instruction   string
		expectedPorts []int
	}{
		{
			name:          "plain server gets ssh only",
			instruction:   "create a vm",
			expectedPorts: []int{22},
		},
		{
			name:          "web server gets http and https",
			instruction:   "Set up web hosting infrastructure",
			expectedPorts: []int{22, 80, 443},
		},
		{
			name:          "database server gets db ports",
			instruction:   "create a postgres server",
			expectedPorts: []int{22, 3306, 5432},
		},
		{
			name:          "web database server unions both sets",
			instruction:   "web database server",
			expectedPorts: []int{22, 80, 443, 3306, 5432},
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := svc.Extract(tt.instruction)
			require.Equal(t, types.KindComputeInstance, spec.Kind)
			assert.Equal(t, tt.expectedPorts, spec.Params[types.ParamAllowedPorts])
		})
	}
}

func TestExtract_NetworkTags(t *testing.T) {
	svc := NewService()

	plain := svc.Extract("create a vm")
	assert.Equal(t, []string{"terraform-managed"}, plain.Params[types.ParamNetworkTags])

	web := svc.Extract("create a web server")
	assert.Equal(t, []string{"terraform-managed", "http-server", "https-server"}, web.Params[types.ParamNetworkTags])

	both := svc.Extract("web database server")
	assert.Equal(t,
		[]string{"terraform-managed", "http-server", "https-server", "db-server"},
		both.Params[types.ParamNetworkTags])
}

func TestExtract_NameCapture(t *testing.T) {
	tests := []struct {
		name         string
		instruction  string
		paramName    string
		expectedName string
	}{
		{
			name:         "named phrase",
			instruction:  "create a vm named test-server",
			paramName:    types.ParamInstanceName,
			expectedName: "test-server",
		},
		{
			name:         "called phrase",
			instruction:  "create a bucket called media-assets",
			paramName:    types.ParamBucketName,
			expectedName: "media-assets",
		},
		{
			name:         "token casing is normalized",
			instruction:  "create a vm NAMED WebServer",
			paramName:    types.ParamInstanceName,
			expectedName: "webserver",
		},
		{
			name:         "trailing punctuation is stripped",
			instruction:  "create a vm named app-01.",
			paramName:    types.ParamInstanceName,
			expectedName: "app-01",
		},
		{
			name:         "quoted token is stripped",
			instruction:  `create a network called "edge-net"`,
			paramName:    types.ParamNetworkName,
			expectedName: "edge-net",
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := svc.Extract(tt.instruction)
			assert.Equal(t, tt.expectedName, spec.Params[tt.paramName])
		})
	}
}

func TestExtract_DefaultNamesAreStable(t *testing.T) {
	svc := NewService()

	first := svc.Extract("create a vm")
	second := svc.Extract("create a vm")
	other := svc.Extract("create a big vm")

	name1 := first.Params[types.ParamInstanceName].(string)
	name2 := second.Params[types.ParamInstanceName].(string)
	name3 := other.Params[types.ParamInstanceName].(string)

	assert.Equal(t, name1, name2, "identical input must produce identical default names")
	assert.NotEqual(t, name1, name3, "different input should produce different default names")
	assert.True(t, strings.HasPrefix(name1, "vm-instance-"))
}

func TestExtract_DiskSize(t *testing.T) {
	tests := []struct {
		name         string
		instruction  string
		expectedSize int
	}{
		{
			name:         "default",
			instruction:  "create a vm",
			expectedSize: 20,
		},
		{
			name:         "database default",
			instruction:  "create a database server",
			expectedSize: 500,
		},
		{
			name:         "explicit gb",
			instruction:  "create a vm with 100 gb disk",
			expectedSize: 100,
		},
		{
			name:         "explicit tb",
			instruction:  "create a vm with 2 tb disk",
			expectedSize: 2048,
		},
		{
			name:         "explicit size outranks database default",
			instruction:  "create a database server with 250gb disk",
			expectedSize: 250,
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := svc.Extract(tt.instruction)
			assert.Equal(t, tt.expectedSize, spec.Params[types.ParamDiskSizeGB])
		})
	}
}

func TestExtract_ZoneAndLocation(t *testing.T) {
	svc := NewService()

	defaultZone := svc.Extract("create a vm")
	assert.Equal(t, "us-central1-a", defaultZone.Params[types.ParamZone])

	euZone := svc.Extract("create a vm in europe")
	assert.Equal(t, "europe-west1-b", euZone.Params[types.ParamZone])

	defaultLocation := svc.Extract("create a bucket")
	assert.Equal(t, "US", defaultLocation.Params[types.ParamLocation])

	euLocation := svc.Extract("create a bucket in eu")
	assert.Equal(t, "EU", euLocation.Params[types.ParamLocation])

	asiaLocation := svc.Extract("create a bucket in asia")
	assert.Equal(t, "ASIA", asiaLocation.Params[types.ParamLocation])
}

func TestExtract_NetworkParameters(t *testing.T) {
	svc := NewService()

	spec := svc.Extract("create a network named prod-net with 10.1.0.0/16 for web traffic")
	assert.Equal(t, types.KindVirtualNetwork, spec.Kind)
	assert.Equal(t, "prod-net", spec.Params[types.ParamNetworkName])
	assert.Equal(t, "10.1.0.0/16", spec.Params[types.ParamCIDRRange])
	assert.Equal(t, []int{22, 80, 443}, spec.Params[types.ParamAllowedPorts])
	assert.Equal(t, "us-central1", spec.Params[types.ParamRegion])

	defaulted := svc.Extract("create a vpc")
	assert.Equal(t, "10.0.0.0/24", defaulted.Params[types.ParamCIDRRange])
}

func TestExtract_OSLogin(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name            string
		instruction     string
		expectedOSLogin bool
	}{
		{
			name:            "ssh access requested",
			instruction:     "create a vm named bastion with ssh access",
			expectedOSLogin: true,
		},
		{
			name:            "case insensitive",
			instruction:     "Create a VM with SSH enabled",
			expectedOSLogin: true,
		},
		{
			name:            "no ssh mention",
			instruction:     "create a small vm named web-01",
			expectedOSLogin: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := svc.Extract(tc.instruction)
			require.Equal(t, types.KindComputeInstance, spec.Kind)
			assert.Equal(t, tc.expectedOSLogin, spec.Params[types.ParamOSLoginEnabled])
		})
	}
}

func TestExtract_Versioning(t *testing.T) {
	svc := NewService()

	backup := svc.Extract("Create backup storage")
	assert.Equal(t, types.KindObjectStorage, backup.Kind)
	assert.Equal(t, true, backup.Params[types.ParamVersioningEnabled])

	plain := svc.Extract("Create storage")
	assert.Equal(t, false, plain.Params[types.ParamVersioningEnabled])
}

func TestExtract_EndToEndScenarios(t *testing.T) {
	svc := NewService()

	t.Run("small ubuntu vm named test-server", func(t *testing.T) {
		spec := svc.Extract("Create a small Ubuntu VM instance named test-server")

		assert.Equal(t, types.KindComputeInstance, spec.Kind)
		assert.Equal(t, types.SizeClassMicro, spec.Params[types.ParamMachineSizeClass])
		assert.Equal(t, types.ImageUbuntuLTS, spec.Params[types.ParamImageFamily])
		assert.Equal(t, "test-server", spec.Params[types.ParamInstanceName])
		assert.Equal(t, []int{22}, spec.Params[types.ParamAllowedPorts])
	})

	t.Run("web hosting infrastructure", func(t *testing.T) {
		spec := svc.Extract("Set up web hosting infrastructure")

		assert.Equal(t, types.KindComputeInstance, spec.Kind)
		assert.Equal(t, []int{22, 80, 443}, spec.Params[types.ParamAllowedPorts])
	})

	t.Run("backup storage", func(t *testing.T) {
		spec := svc.Extract("Create backup storage")

		assert.Equal(t, types.KindObjectStorage, spec.Kind)
		assert.Equal(t, true, spec.Params[types.ParamVersioningEnabled])
	})
}
