package hcl

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// TokensForResourceReference creates tokens for a resource reference (e.g.,
// "google_compute_network.prod_net.id")
func TokensForResourceReference(ref string) hclwrite.Tokens {
	return hclwrite.Tokens{
		&hclwrite.Token{Type: hclsyntax.TokenIdent, Bytes: []byte(ref)},
	}
}

// TokensForStringTemplate creates properly formatted tokens for a template string
// (string with ${} interpolations)
func TokensForStringTemplate(template string) hclwrite.Tokens {
	return hclwrite.Tokens{
		&hclwrite.Token{Type: hclsyntax.TokenOQuote, Bytes: []byte(`"`)},
		&hclwrite.Token{Type: hclsyntax.TokenQuotedLit, Bytes: []byte(template)},
		&hclwrite.Token{Type: hclsyntax.TokenCQuote, Bytes: []byte(`"`)},
	}
}

// TokensForVarReference creates tokens for a Terraform variable reference (e.g., "var.project_id")
func TokensForVarReference(varName string) hclwrite.Tokens {
	return hclwrite.Tokens{
		&hclwrite.Token{Type: hclsyntax.TokenIdent, Bytes: []byte("var." + varName)},
	}
}

// TokensForStringList creates tokens for a list of quoted strings (e.g., ["22", "80"])
func TokensForStringList(items []string) hclwrite.Tokens {
	values := make([]cty.Value, len(items))
	for i, item := range items {
		values[i] = cty.StringVal(item)
	}

	if len(values) == 0 {
		return hclwrite.TokensForValue(cty.ListValEmpty(cty.String))
	}

	return hclwrite.TokensForValue(cty.ListVal(values))
}

// TokensForPortList renders an []int port collection as the list-of-strings literal
// Terraform firewall blocks expect.
func TokensForPortList(ports []int) hclwrite.Tokens {
	items := make([]string, len(ports))
	for i, port := range ports {
		items[i] = strconv.Itoa(port)
	}
	return TokensForStringList(items)
}
