// Package pagegraph turns a rendered page's element tree into a typed content
// graph, scores every node for importance and produces bounded text extracts
// for an automated agent.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their concern or primary dependency (e.g., build/, score/, rod/,
// goquery/, sqlite/).
package pagegraph
