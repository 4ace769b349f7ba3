// Package jobs provides scheduled background tasks for the barista.
//
// Jobs use github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// StateReportJob logs the number of connected customers and the item counts
// of the waiting, brewing and tray areas. Reports identical to the previous
// one are skipped, so an idle cafe stays quiet.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(getCafeStateHandler, "@every 10s", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
