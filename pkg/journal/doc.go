// Package journal records one entry per engine verb invocation: which verb
// ran, on what input (by hash and size), against which descriptor, how long
// it took, and how it failed if it did.
//
// Recorder accepts records without blocking and writes them from a
// background worker to a Storage backend; see the storage subpackage for
// SQLite and in-memory backends and the retention subpackage for pruning.
//
//	store, err := storage.Open(cfg.Journal, logger)
//	if err != nil {
//		return err
//	}
//	rec := journal.NewRecorder(store, journal.DefaultRecorderConfig(), collector, logger)
//	defer rec.Close()
//
//	rec.Record(&journal.Record{Operation: "resprof", InputHash: journal.HashInput(expr)})
package journal
