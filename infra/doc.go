// Package infra contains technical adapters such as metrics exporters,
// result stores and dataset readers. These packages depend only on the
// interfaces and types defined in the core packages.
package infra
