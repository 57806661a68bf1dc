// Package inspect serves a small debugging HTTP API for a running vela
// runtime.
//
// Routes:
//
//	GET /metrics    Prometheus metrics
//	GET /snapshot   the current DOM under the inspected root, as HTML
//	GET /events     a websocket streaming runtime events as JSON
//	GET /healthz    liveness probe
//
// The DOM belongs to the runtime goroutine, so /snapshot runs its read
// through an Executor. With a host.Loop, pass the loop itself:
//
//	loop := host.NewLoop()
//	rt := vela.NewRuntime(loop)
//	srv := inspect.New(rt, doc, inspect.WithExecutor(loop))
//	go srv.ListenAndServe(ctx, "127.0.0.1:7070")
//
// Events are delivered through a bounded buffer per connection. A client
// that falls behind loses events rather than stalling the runtime.
package inspect
