// Package probe checks which hosts accept a TCP connection on a given port.
//
// # Overview
//
// Prober fans a list of hostnames out over a fixed number of concurrent
// connect attempts and folds the outcomes into a Partition: the hosts that
// accepted the connection under key true, every other host under key false.
//
// # Concurrency
//
// A semaphore of Options.Concurrency slots bounds the in-flight attempts.
// Each attempt reports a HostRecord on a results channel; the goroutine that
// called Probe is the only reader of that channel and the only writer of the
// Partition, so no other locking is needed. Lists are filled in completion
// order, not input order.
//
// # Failure semantics
//
// A failed attempt is data, not an error: DNS failure, refusal, timeout,
// cancellation and rate-limit cancellation all put the host in the false
// list. A host listed twice is probed twice and recorded twice.
//
// # Timeouts
//
// Options.Timeout bounds each attempt. Zero leaves the attempt to the
// operating system's own connect timeout, which can take tens of seconds.
package probe
