// Package scheduler provides time-based execution of callbacks behind a small,
// substitutable interface.
//
// Everything in this module that needs to run "later" or "repeatedly" goes
// through a Scheduler instead of calling time.AfterFunc or time.NewTicker
// directly. Production code uses a Loop, tests use a Virtual clock.
//
// # Scheduler
//
// The interface has three operations plus a clock reading:
//
//	tok := s.ScheduleOnce(time.Second, func() { fmt.Println("later") })
//	tick := s.ScheduleRepeating(250*time.Millisecond, func() { fmt.Println("tick") })
//	s.Cancel(tick)
//
// Actions that become due at the same instant run in submission order.
// Cancel is idempotent and ignores unknown tokens. Once Cancel returns on the
// goroutine that executes actions, the cancelled action never starts, even if
// its due time has already passed.
//
// # Loop
//
// Loop executes every action on a single goroutine, which gives producers and
// handlers a single-threaded, event-loop style execution model:
//
//	loop := scheduler.NewLoop(scheduler.WithLogger(log))
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(loop.Run(ctx))
//
//	loop.Post(func() {
//		// runs on the loop goroutine
//	})
//
// A panicking action is recovered, logged and counted in Stats; the loop keeps
// running. Cancel called from another goroutine cannot revoke an action the
// loop has already started; post the cancellation to the loop when that
// matters.
//
// # Virtual
//
// Virtual is a deterministic scheduler driven by an explicit clock. Nothing
// runs until the clock is advanced, and actions run on the caller's goroutine:
//
//	v := scheduler.NewVirtual(time.Time{})
//	v.ScheduleOnce(time.Second, fn)
//	v.Advance(500 * time.Millisecond) // fn has not run
//	v.Advance(500 * time.Millisecond) // fn runs now
//
// # Configuration
//
// Config is tagged for environment loading:
//
//	var cfg scheduler.Config
//	config.MustLoad(&cfg)
//	loop := scheduler.NewLoopFromConfig(cfg, scheduler.WithLogger(log))
package scheduler
