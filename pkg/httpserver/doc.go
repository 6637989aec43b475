// Package httpserver runs the HTTP surface of a long-lived subscription watcher.
//
// Server wraps http.Server: Run blocks until the context is cancelled, then
// shuts down gracefully and runs the registered shutdown hooks (for example
// stopping subscription controllers) before returning.
//
// Health builds a readiness handler from named checks and reports each
// result as JSON.
//
// Example:
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg,
//		httpserver.WithLogger(log),
//		httpserver.OnShutdown(func(context.Context) { ctrl.Stop() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
