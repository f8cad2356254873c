/*
Package observability exposes command-loop activity as Prometheus metrics.

Metrics plugs into the runner through domain.LifecycleHooks, so the loop itself
never imports Prometheus. Handler serves the collected metrics over HTTP.
*/
package observability
