// Package watch keeps a pony pack converted while it is being edited.
//
// Watcher wraps fsnotify over the pack root. Only changes to files named
// pony.ini, and directories appearing under the root, count as changes, so
// the _pony.ini and config.json files the pipeline writes do not retrigger
// it. Bursts of events are coalesced by a Debouncer.
//
// Service ties a Watcher to a pack.Pack:
//
//	svc := watch.NewService(p, w,
//	    watch.WithAddress(":9090"),
//	    watch.WithMetrics(collector, "/metrics"),
//	    watch.WithHealth(checker, info),
//	    watch.WithScheduler(scheduler),
//	)
//	err := svc.Run(ctx)
//
// Run converts the pack once, then again after every change, until ctx is
// cancelled. Runs never overlap.
package watch
