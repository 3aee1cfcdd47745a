// Package quote compiles a whitespace-sensitive template string into an
// encoder.Plan, and runs that plan to produce a genco.Stream.
//
// Templates mix literal target-language text with directives introduced
// by the # sigil: interpolations (#name, #(expr)), whitespace escapes
// (#<space>, #<push>, #<line>), control forms (for/if/match) and scope
// escapes. Whitespace between template tokens is reclassified from source
// positions into at most one spacing intent per gap, and indentation
// levels are reconstructed from column deltas.
package quote
