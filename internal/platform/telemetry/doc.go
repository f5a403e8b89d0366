// Package telemetry groups the operational observability of dossier.
//
// Tracing lives in platform/otel. Counters for link resolution, registry
// eviction, document codec runs and portrait decoding live in
// telemetry/metrics and are flushed to a node_exporter textfile when the
// command exits.
package telemetry
