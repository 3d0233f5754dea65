/*
Package observability exposes simulation activity as Prometheus metrics.

Metrics owns a private registry so several simulators, or tests, can run in
one process without colliding on the default registry. Feed it by passing
Hooks() to a simulator and serve it with Handler().
*/
package observability
