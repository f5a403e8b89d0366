// Package metrics provides operational metrics collection.
//
// Metrics are registered on the default Prometheus registry and can be
// written once to a textfile for the node_exporter textfile collector, which
// suits a short-lived command better than a scrape endpoint.
//
// # Metric Categories
//
//   - Links: resolution outcomes and evictions from the record registry
//   - Documents: contact load, save and print runs
//   - Mugshots: decoded portraits and decode failures
//   - Warnings: recoverable problems by error code
package metrics
