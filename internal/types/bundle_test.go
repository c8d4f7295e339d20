package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateBundleOrdering(t *testing.T) {
	var bundle TemplateBundle
	bundle.Add("provider.tf", "terraform {}")
	bundle.Add("main.tf", "resource {}")
	bundle.Add("variables.tf", "variable {}")

	assert.Equal(t, []string{"provider.tf", "main.tf", "variables.tf"}, bundle.Names())
	assert.Equal(t, 3, bundle.Len())

	files := bundle.Files()
	require.Len(t, files, 3)
	assert.Equal(t, "main.tf", files[1].Name)
	assert.Equal(t, "resource {}", files[1].Content)
}

func TestTemplateBundleGet(t *testing.T) {
	var bundle TemplateBundle
	bundle.Add("main.tf", "resource {}")

	content, ok := bundle.Get("main.tf")
	assert.True(t, ok)
	assert.Equal(t, "resource {}", content)

	_, ok = bundle.Get("missing.tf")
	assert.False(t, ok)
}

func TestTemplateBundleAsMap(t *testing.T) {
	var bundle TemplateBundle
	bundle.Add("main.tf", "resource {}")
	bundle.Add("variables.tf", "variable {}")

	assert.Equal(t, map[string]string{
		"main.tf":      "resource {}",
		"variables.tf": "variable {}",
	}, bundle.AsMap())
}

func TestTemplateBundleFilesReturnsCopy(t *testing.T) {
	var bundle TemplateBundle
	bundle.Add("main.tf", "resource {}")

	files := bundle.Files()
	files[0].Content = "mutated"

	content, _ := bundle.Get("main.tf")
	assert.Equal(t, "resource {}", content)
}
