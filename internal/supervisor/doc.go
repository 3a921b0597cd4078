// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs Cinematch's long-lived services under a suture v4 tree.

	RootSupervisor ("cinematch")
	├── SupportSupervisor ("support-layer")
	│   └── CacheSweeperService (only when cache.ttl > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services that return an error are restarted with suture's failure decay and
backoff. Canceling the context passed to Serve shuts the whole tree down,
waiting up to ShutdownTimeout for each service. Supervisor events are logged
through sutureslog using the zerolog-backed slog adapter from the logging
package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

The services subpackage holds the suture.Service wrappers.
*/
package supervisor
