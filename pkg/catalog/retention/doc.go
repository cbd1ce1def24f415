// Package retention removes old catalog entries.
//
// A Pruner deletes entries older than a number of days; a Scheduler runs it
// on a cron expression (github.com/robfig/cron/v3) while `ponyini watch` is
// running. `ponyini catalog prune` calls the Pruner directly.
package retention
