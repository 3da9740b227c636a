package typegen

// BoxKey identifies one box-property directive: break the reference cycle
// at this exact (file, enclosing schema, property) triple by emitting a
// pointer field instead of a value field, even when the property is
// required (SPEC_FULL.md §4.H field rule 4, §9 Open Question).
type BoxKey struct {
	File     string
	Schema   string
	Property string
}

// BoxSet is the configured set of box-property directives for one package
// (§6 Config.box_properties).
type BoxSet map[BoxKey]bool

// Has reports whether k was explicitly directed to box.
func (b BoxSet) Has(k BoxKey) bool {
	return b != nil && b[k]
}

// NewBoxSet builds a BoxSet from (file, schema, property) triples, the
// shape the package configuration decodes box_properties into.
func NewBoxSet(entries [][3]string) BoxSet {
	b := make(BoxSet, len(entries))
	for _, e := range entries {
		b[BoxKey{File: e[0], Schema: e[1], Property: e[2]}] = true
	}
	return b
}
