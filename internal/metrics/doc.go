// Package metrics provides optional instrumentation for link rewriting and migration runs.
//
// Components receive a Recorder through their options. NoopRecorder is the
// default and costs nothing. PrometheusRecorder registers counters and
// histograms on a registry that can be written to a node_exporter textfile
// once the run is over, since a one-shot CLI has no scrape endpoint.
package metrics
