/*
Package observability turns engine lifecycle hooks into signals.

It provides structured logging hooks and Prometheus metrics for move
requests, rejections, commits and cancellations. Both are plain
domain.LifecycleHooks values and can be combined with Merge.
*/
package observability
