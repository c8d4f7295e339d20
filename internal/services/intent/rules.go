package intent

import (
	"github.com/terrascribe/terrascribe/internal/types"
)

// kindGroup maps a set of keywords to a resource kind. Groups are evaluated in
// declaration order and the first group with any substring hit wins.
type kindGroup struct {
	kind     types.ResourceKind
	keywords []string
}

var kindGroups = []kindGroup{
	{types.KindComputeInstance, []string{"vm", "instance", "compute", "server", "hosting"}},
	{types.KindObjectStorage, []string{"bucket", "storage"}},
	{types.KindVirtualNetwork, []string{"network", "vpc"}},
}

// ladderRule is one rung of a keyword ladder: if any keyword is a substring of the
// normalized instruction, the rung's value is taken.
type ladderRule struct {
	keywords []string
	value    string
}

// ladder is an ordered list of rules with a terminal default. Rules are evaluated
// top-to-bottom, first hit wins, no hit falls through to the default.
type ladder struct {
	rules    []ladderRule
	fallback string
}

func (l ladder) evaluate(normalized string) string {
	for _, rule := range l.rules {
		if containsAny(normalized, rule.keywords) {
			return rule.value
		}
	}
	return l.fallback
}

// The database rung is checked before the generic size words so that "large database
// server" lands on the high-memory class.
var machineSizeLadder = ladder{
	rules: []ladderRule{
		{keywords: []string{"database", "db"}, value: types.SizeClassHighMemory},
		{keywords: []string{"large", "big", "powerful"}, value: types.SizeClassLarge},
		{keywords: []string{"small", "tiny", "micro"}, value: types.SizeClassMicro},
	},
	fallback: types.SizeClassMicro,
}

var imageFamilyLadder = ladder{
	rules: []ladderRule{
		{keywords: []string{"ubuntu"}, value: types.ImageUbuntuLTS},
		{keywords: []string{"centos"}, value: types.ImageCentOS7},
		{keywords: []string{"windows"}, value: types.ImageWindowsServer},
	},
	fallback: types.ImageDebianStable,
}

var zoneLadder = ladder{
	rules: []ladderRule{
		{keywords: []string{"europe", "eu"}, value: "europe-west1-b"},
	},
	fallback: "us-central1-a",
}

var locationLadder = ladder{
	rules: []ladderRule{
		{keywords: []string{"europe", "eu"}, value: "EU"},
		{keywords: []string{"asia"}, value: "ASIA"},
	},
	fallback: "US",
}

var regionLadder = ladder{
	rules: []ladderRule{
		{keywords: []string{"europe", "eu"}, value: "europe-west1"},
		{keywords: []string{"asia"}, value: "asia-east1"},
	},
	fallback: "us-central1",
}

// portCategory contributes its ports when any keyword hits. Unlike ladders, category
// hits union rather than first-wins: a "web database server" opens both port sets.
type portCategory struct {
	keywords []string
	ports    []int
	tags     []string
}

var portCategories = []portCategory{
	{
		keywords: []string{"web", "website", "http"},
		ports:    []int{80, 443},
		tags:     []string{"http-server", "https-server"},
	},
	{
		keywords: []string{"database", "mysql", "postgres"},
		ports:    []int{3306, 5432},
		tags:     []string{"db-server"},
	},
}

const (
	sshPort        = 22
	baseTag        = "terraform-managed"
	diskGBDefault  = 20
	diskGBDatabase = 500
	cidrDefault    = "10.0.0.0/24"
)
