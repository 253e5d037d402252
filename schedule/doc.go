// Package schedule implements the named GBP iteration-schedule policies:
// pure functions from (internal_count, external_count) to a
// deterministic, finite sequence of (run_internal, run_external) pairs, one
// per tick-iteration.
//
// Every policy produces exactly max(internal_count, external_count) entries
// and, within each channel, exactly internal_count (respectively
// external_count) true values. Policies are pure
// and allocate their result eagerly; callers consume the whole slice, no
// more and no fewer, as the per-tick iteration budget.
package schedule
