// Package parmap maps deeply nested model configurations onto a flat,
// deduplicated vector of free parameters, and back.
//
// # Key capabilities
//
//   - Walk arbitrary nesting (slices, string maps, labelled arrays, complex
//     pairs) mixing fixed constants with free priors
//   - Deduplicate by identity: one shared prior collapses to one slot, two
//     merely value-equal priors stay distinct
//   - Produce a serializable recipe (a Map of tagged nodes) that rebuilds
//     the original nested value from any future slot vector
//   - Tie parameters after the fact, shrinking the registry and rewriting
//     every slot reference consistently
//
// # The Map
//
// A Map is a tree of Nodes, each one of four kinds: a constant leaf, a slot
// reference, an ordered sequence, or a deferred constructor application
// drawn from a closed set (dictionary, labelled array, complex number). No
// executable code is embedded, so a Map survives a YAML round trip and can
// be evaluated against vectors produced long after it was built.
//
// # Concurrency
//
// Building and tying mutate the Registry and must be externally serialized.
// Reading is pure: any number of goroutines may evaluate the same Map
// against different vectors once construction and tying are done.
package parmap
