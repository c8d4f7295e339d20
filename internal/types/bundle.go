package types

// BundleFile is a single named configuration document inside a bundle.
type BundleFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TemplateBundle is the ordered set of rendered configuration files produced for one
// resource specification. File order is the renderer's declared order for the kind and
// is stable across runs.
type TemplateBundle struct {
	files []BundleFile
}

func (b *TemplateBundle) Add(name, content string) {
	b.files = append(b.files, BundleFile{Name: name, Content: content})
}

// Files returns the bundle's files in render order.
func (b TemplateBundle) Files() []BundleFile {
	out := make([]BundleFile, len(b.files))
	copy(out, b.files)
	return out
}

func (b TemplateBundle) Get(name string) (string, bool) {
	for _, f := range b.files {
		if f.Name == name {
			return f.Content, true
		}
	}
	return "", false
}

func (b TemplateBundle) Names() []string {
	names := make([]string, len(b.files))
	for i, f := range b.files {
		names[i] = f.Name
	}
	return names
}

func (b TemplateBundle) Len() int {
	return len(b.files)
}

// AsMap flattens the bundle for JSON responses. Ordering is lost, so callers that care
// about render order must use Files.
func (b TemplateBundle) AsMap() map[string]string {
	out := make(map[string]string, len(b.files))
	for _, f := range b.files {
		out[f.Name] = f.Content
	}
	return out
}
