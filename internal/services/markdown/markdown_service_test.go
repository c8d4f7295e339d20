package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownBuilder(t *testing.T) {
	md := New().
		AddHeading("Terraform Infrastructure", 1).
		AddParagraph("Generated from an instruction.").
		AddList([]string{"provider.tf", "main.tf"}).
		AddCodeBlock("terraform init", "bash").
		AddHorizontalRule()

	out := md.String()

	assert.True(t, strings.HasPrefix(out, "# Terraform Infrastructure\n\n"))
	assert.Contains(t, out, "Generated from an instruction.\n\n")
	assert.Contains(t, out, "- provider.tf\n- main.tf\n")
	assert.Contains(t, out, "```bash\nterraform init\n```")
	assert.Contains(t, out, "---\n")
}

func TestMarkdownHeadingLevels(t *testing.T) {
	assert.True(t, strings.HasPrefix(New().AddHeading("A", 3).String(), "### A"))
	// Out-of-range levels clamp to level 1.
	assert.True(t, strings.HasPrefix(New().AddHeading("A", 9).String(), "# A"))
	assert.True(t, strings.HasPrefix(New().AddHeading("A", 0).String(), "# A"))
}

func TestMarkdownTable(t *testing.T) {
	out := New().AddTable(
		[]string{"File", "Purpose"},
		[][]string{
			{"provider.tf", "provider configuration"},
			{"main.tf", "resource definitions"},
		},
	).String()

	assert.Contains(t, out, "| File | Purpose |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| provider.tf | provider configuration |")

	// Short rows are padded to the header width.
	padded := New().AddTable([]string{"A", "B"}, [][]string{{"only"}}).String()
	assert.Contains(t, padded, "| only |  |")
}

func TestMarkdownTableNoHeaders(t *testing.T) {
	assert.Empty(t, New().AddTable(nil, [][]string{{"x"}}).String())
}
