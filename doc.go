// Package genco assembles formatted source text for a target programming
// language from a stream of opaque tokens.
//
// A Stream is built either imperatively (Append, Space, Push, Line, Indent)
// or by running a quasi-quote template through the sibling genco/quote
// package. A Formatter then renders a Stream to text, asking a Lang
// implementation to format language-specific items and hoist their imports
// into a preamble.
//
// genco itself knows nothing about any particular target language; see
// genco/lang/js and genco/lang/golang for backends.
package genco
