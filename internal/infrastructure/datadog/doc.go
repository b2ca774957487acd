// Package datadog adapts the Datadog v2 metrics intake API to the
// bridge's sink interface.
//
// Each flush becomes one SubmitMetrics call carrying every series of the
// batch as gauges. The intake API's per-point error strings are passed
// through in the SubmitResult; transport-level failures are returned as
// errors and the batch is lost — retries are deliberately out of scope.
//
// Credentials travel per request via the context, following the
// datadog-api-client-go convention. The optional site setting selects
// the regional endpoint (datadoghq.com, datadoghq.eu, ...).
package datadog
