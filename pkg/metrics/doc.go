/*
Package metrics provides Prometheus instrumentation and component health
reporting for the sync engine.

Metrics are package-level collectors registered in init() and shared by all
engine components:

  - Fetch: cycle count, cycle duration, absorbed per-metric failures
  - Observation: notifications by category, coalesced notifications,
    live watch gauge, registration failures
  - Write: outcomes by status, records written, records skipped by
    category, write duration
  - Authorization: prompt outcomes, denied-category gauge

The Timer helper wraps duration observation:

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.FetchDuration)

Handler() exposes the Prometheus scrape endpoint and HealthHandler() a JSON
/health endpoint fed by RegisterComponent/UpdateComponent calls from the
engine.
*/
package metrics
