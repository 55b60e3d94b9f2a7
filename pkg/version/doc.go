// Package version orders and selects release versions reported by a package registry.
//
// Registries mix real versions with other keys (dist-tags, "created", "modified",
// pre-releases). SelectLatest keeps only the keys accepted by a Predicate and
// returns the newest one according to Compare, which looks at the numeric
// major, minor and patch components only.
package version
