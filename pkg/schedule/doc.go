// Package schedule keeps clocks in sync by periodically scanning for them
// and writing the current time.
//
// Schedules are cron expressions ("0 3 * * *"), descriptors ("@daily")
// or Go durations ("6h"):
//
//	s, err := schedule.New(svc, schedule.Config{Schedule: "@hourly"})
//	if err != nil {
//	    return err
//	}
//	s.Start(ctx)
//	defer s.Stop()
package schedule
