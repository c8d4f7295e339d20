package intent

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terrascribe/terrascribe/internal/types"
)

var (
	diskSizePattern = regexp.MustCompile(`(\d+)\s*(gb|tb)`)
	cidrPattern     = regexp.MustCompile(`\d+\.\d+\.\d+\.\d+/\d+`)
)

// Service parses natural-language instructions into fully-populated resource
// specifications. It is stateless and safe for concurrent use.
type Service struct {
}

func NewService() *Service {
	return &Service{}
}

// Extract maps an instruction to a ResourceSpec. It never fails: if no resource-kind
// keyword matches, the result carries KindUnrecognized and an empty parameter map, and
// the caller decides whether that is an error. Identical input always yields an
// identical specification.
func (s *Service) Extract(instruction string) types.ResourceSpec {
	normalized := strings.ToLower(instruction)

	kind := detectKind(normalized)

	spec := types.ResourceSpec{
		Kind:        kind,
		Params:      types.Params{},
		Instruction: instruction,
	}

	switch kind {
	case types.KindComputeInstance:
		ports, tags := extractPortsAndTags(normalized)
		spec.Params[types.ParamMachineSizeClass] = machineSizeLadder.evaluate(normalized)
		spec.Params[types.ParamImageFamily] = imageFamilyLadder.evaluate(normalized)
		spec.Params[types.ParamInstanceName] = extractName(instruction, normalized, "vm-instance")
		spec.Params[types.ParamZone] = zoneLadder.evaluate(normalized)
		spec.Params[types.ParamDiskSizeGB] = extractDiskSizeGB(normalized)
		spec.Params[types.ParamOSLoginEnabled] = strings.Contains(normalized, "ssh")
		spec.Params[types.ParamNetworkTags] = tags
		spec.Params[types.ParamAllowedPorts] = ports

	case types.KindObjectStorage:
		spec.Params[types.ParamBucketName] = extractName(instruction, normalized, "storage-bucket")
		spec.Params[types.ParamLocation] = locationLadder.evaluate(normalized)
		spec.Params[types.ParamVersioningEnabled] = strings.Contains(normalized, "backup") || strings.Contains(normalized, "version")

	case types.KindVirtualNetwork:
		ports, _ := extractPortsAndTags(normalized)
		spec.Params[types.ParamNetworkName] = extractName(instruction, normalized, "vpc-network")
		spec.Params[types.ParamCIDRRange] = extractCIDR(instruction)
		spec.Params[types.ParamAllowedPorts] = ports
		spec.Params[types.ParamRegion] = regionLadder.evaluate(normalized)
	}

	return spec
}

func detectKind(normalized string) types.ResourceKind {
	for _, group := range kindGroups {
		if containsAny(normalized, group.keywords) {
			return group.kind
		}
	}
	return types.KindUnrecognized
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// extractName looks for a "named <token>" or "called <token>" phrase. The token is the
// next whitespace-delimited word with surrounding punctuation stripped, lowercased.
// Without such a phrase the name defaults to the kind prefix plus an FNV-1a digest of
// the normalized instruction, so identical input always yields the same name.
func extractName(instruction, normalized, defaultPrefix string) string {
	words := strings.Fields(instruction)
	for i, word := range words {
		lowered := strings.ToLower(word)
		if (lowered == "named" || lowered == "called") && i+1 < len(words) {
			token := strings.Trim(words[i+1], `.,;:!?"'()[]{}`)
			if token != "" {
				return strings.ToLower(token)
			}
		}
	}

	digest := fnv.New32a()
	digest.Write([]byte(normalized))
	return fmt.Sprintf("%s-%08x", defaultPrefix, digest.Sum32())
}

// extractPortsAndTags derives the firewall port set and instance network tags from the
// port categories. SSH is always allowed; category hits union their port sets rather
// than first-wins. Ports come back sorted ascending for stable rendering.
func extractPortsAndTags(normalized string) ([]int, []string) {
	portSet := map[int]bool{sshPort: true}
	tags := []string{baseTag}

	for _, category := range portCategories {
		if !containsAny(normalized, category.keywords) {
			continue
		}
		for _, port := range category.ports {
			portSet[port] = true
		}
		tags = append(tags, category.tags...)
	}

	ports := make([]int, 0, len(portSet))
	for port := range portSet {
		ports = append(ports, port)
	}
	sort.Ints(ports)

	return ports, tags
}

// extractDiskSizeGB honours an explicit "<N> gb" or "<N> tb" phrase first, then falls
// back to a larger default for database workloads.
func extractDiskSizeGB(normalized string) int {
	if match := diskSizePattern.FindStringSubmatch(normalized); match != nil {
		size, err := strconv.Atoi(match[1])
		if err == nil {
			if match[2] == "tb" {
				return size * 1024
			}
			return size
		}
	}

	if containsAny(normalized, []string{"database", "db"}) {
		return diskGBDatabase
	}
	return diskGBDefault
}

func extractCIDR(instruction string) string {
	if match := cidrPattern.FindString(instruction); match != "" {
		return match
	}
	return cidrDefault
}
