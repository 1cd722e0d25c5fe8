// Package reconstruct re-emits selected elements of a parsed score as
// a new standalone document.
//
// The [Builder] keeps a reference to the source document and renders
// any subset of its classified elements, typically one category or
// one instrument, into a view window fitted around the selection:
//
//	builder := reconstruct.NewBuilder(doc)
//	out, err := builder.Build(noteheads, reconstruct.DefaultOptions())
//
// Geometry is re-emitted verbatim from the source elements with each
// accumulated transform flattened to a single matrix; container
// groups are not recreated. Text content is written entirely as
// uppercase hexadecimal character references, which keeps the output
// independent of the source encoding. Elements that carry no drawable
// source markup are omitted without error.
//
// Output is deterministic byte for byte: attribute order is fixed and
// every number is formatted with the shortest round-tripping form.
package reconstruct
