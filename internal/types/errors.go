package types

import "fmt"

// UnsupportedResourceKindError is returned when the renderer is invoked with a
// specification whose kind it cannot produce files for. An unrecognized intent is not
// an error on its own; it only becomes one if a caller asks for it to be rendered.
type UnsupportedResourceKindError struct {
	Kind ResourceKind
}

func (e *UnsupportedResourceKindError) Error() string {
	return fmt.Sprintf("unsupported resource kind: %s", e.Kind)
}

// RenderDefectError signals an internal contract violation between the extractor and
// the renderer - a missing required parameter or an unresolved template placeholder.
// It indicates a code defect rather than bad user input and is never swallowed.
type RenderDefectError struct {
	File   string
	Reason string
}

func (e *RenderDefectError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("rendering defect in %s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("rendering defect: %s", e.Reason)
}
