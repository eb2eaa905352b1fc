// Package exports provides the Uruguay export datasets, the analytics derived
// from them (summary metrics, growth tables, rankings), chart-ready
// structures and CSV/JSON table export.
//
// Data comes from a pluggable Source: a deterministic sample generator, the
// OEC OLAP API, or a PostgreSQL database. Service caches the loaded dataset
// for a TTL and stamps it with a checksum used for change detection.
package exports
