// Package health provides liveness and readiness endpoints for the long running
// watch process.
//
// Components register checks by name:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("catalog", store.Ping)
//	checker.Mount(mux, health.VersionInfo{Version: version})
//
// /healthz always answers 200 while the process runs. /readyz runs every
// check concurrently and answers 503 when any of them fails or times out.
package health
