// Package retention deletes old journal records.
//
// Pruner removes records older than the configured number of days and then
// the oldest records beyond the configured maximum. Scheduler runs it on a
// cron expression (robfig/cron standard syntax).
package retention
