// Package updater applies SWUpdate images through a blocking API.
//
// The update engine is asynchronous: it pulls image data, reports status and
// signals completion through callbacks on its own thread. An Updater hides
// this behind one call that returns once the engine has finished.
//
// # Basic Usage
//
//	engine := libswupdate.New()
//	u := updater.New(engine, updater.WithLogger(logger))
//
//	err := u.Apply(ctx, "/tmp/update.swu", false, func(line string) {
//	    fmt.Println(line) // "Status: 2 message: Installing image"
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Session Lifecycle
//
//	Apply
//	  open image            (*SourceOpenError, engine untouched)
//	  prepare request       (engine defaults, then local source and run type)
//	  lock completion state
//	  Engine.Start          (*StartError when negative)
//	  wait                  <- Handler.Terminated from the engine thread
//	  close image
//
// The completion state is locked before the engine starts and only released
// while waiting, so a completion that arrives before the caller waits is
// never lost.
//
// # Concurrency
//
// Only one session may run per process. A second concurrent Apply returns
// ErrSessionInFlight immediately.
//
// # Error Handling
//
//	var openErr *updater.SourceOpenError
//	var startErr *updater.StartError
//	switch {
//	case errors.As(err, &openErr):
//	    // image missing or unreadable
//	case errors.As(err, &startErr):
//	    // engine busy or unavailable, see startErr.Code
//	case errors.Is(err, updater.ErrSessionInFlight):
//	    // another update is running
//	}
//
// Status lines are advisory and never cause Apply to fail. The engine's
// final state is available from Run as Report.Result.
package updater
