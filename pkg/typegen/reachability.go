package typegen

import (
	"sort"

	"k8s.io/utils/set"

	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/refparse"
	"github.com/oasgen/oasgen/pkg/walk"
)

// reachable computes the transitive closure of schema $refs starting from
// every definition in every primary file: the set of (file, name) keys a
// generated package's models must cover. A schema pulled in only from a
// non-primary (e.g. common-types) file is included once something in the
// primary closure refs it, but the common-types file's *other*,
// never-referenced definitions are not (§4.H Reachability closure).
//
// Built on k8s.io/utils/set for the visited-set bookkeeping, the same
// generic Set type controller-tools itself pulls in for schema/marker
// housekeeping.
func (t *Translator) reachable(primaryFiles []string) ([]diag.RefKey, error) {
	visited := set.New[diag.RefKey]()
	var order []diag.RefKey

	var queue []diag.RefKey
	for _, f := range primaryFiles {
		doc, ok := t.Graph.Documents[f]
		if !ok {
			continue
		}
		for _, name := range sortedDefNames(doc.Definitions) {
			queue = append(queue, diag.RefKey{File: f, Name: name})
		}

		// Every schema an operation's parameters or responses reach is
		// also a root: the operation translator (component I) needs a
		// declared Go type for it even when nothing in Definitions
		// happens to reference it directly (e.g. a common-types error
		// schema used only as a default response).
		for _, path := range sortedDefNames(doc.Paths) {
			item := doc.Paths[path]
			for _, ref := range walk.PathItem(&item) {
				if ref.Role != refparse.RoleSchema {
					continue
				}
				resolved, err := t.Resolver.Schema(f, ref.Reference)
				if err != nil {
					t.Sink.Warn("unresolved schema reference %s in %s %s", ref.Raw, f, path)
					continue
				}
				if resolved.Key != nil {
					queue = append(queue, *resolved.Key)
				}
			}
		}
	}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if visited.Has(key) {
			continue
		}
		visited.Insert(key)
		order = append(order, key)

		schema, ok := t.Graph.SchemaIndex[key]
		if !ok {
			continue
		}
		for _, ref := range walk.Schema(schema) {
			if ref.Role != refparse.RoleSchema {
				continue
			}
			resolved, err := t.Resolver.Schema(key.File, ref.Reference)
			if err != nil {
				t.Sink.Warn("unresolved schema reference %s from %s", ref.Raw, key)
				continue
			}
			if resolved.Key != nil && !visited.Has(*resolved.Key) {
				queue = append(queue, *resolved.Key)
			}
		}
	}

	return order, nil
}

func sortedDefNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
