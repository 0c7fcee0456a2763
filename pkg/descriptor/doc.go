// Package descriptor maintains the registry of resource descriptors: STC-S
// (*.stcs) and STC-X (*.xml) files kept in one directory, each optionally
// accompanied by a YAML sidecar (*.yaml) with a title, owner and tags.
//
// The id of a descriptor is its file name without the extension. STC-S
// descriptors may spread an expression over several lines and carry '#'
// comment lines.
//
// Manager loads the directory on Start and, with watching enabled, reloads
// it after file changes settle. A reload that fails for one file keeps the
// previous version of that file's descriptor. Every parsed tree is seeded
// into the tree cache under its descriptor id, so a changed descriptor
// invalidates exactly its own entries.
//
//	mgr := descriptor.NewManager(cfg.Descriptors, descriptor.NewLoader(nil), treeCache, collector, logger)
//	if err := mgr.Start(ctx); err != nil {
//		return err
//	}
//	defer mgr.Stop()
//
//	d, err := mgr.Get("m81")
package descriptor
