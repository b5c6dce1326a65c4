/*
Package observability provides tools for monitoring a population run.

It includes Prometheus collectors fed by lifecycle hooks, structured
logging hooks, and Chain to combine several hook sets into one.
*/
package observability
