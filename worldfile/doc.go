// Package worldfile loads Karel world documents from JSON files.
//
// A world document is the on-disk description of a starting world: the
// ball-count grid, optional wall and color grids, the robot's starting
// pose, and the command tier programs run at. Documents live in a world
// directory, one .json file per world, addressed by file name without the
// extension.
//
// Usage:
//
//	manager, err := worldfile.NewManager("worlds")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := manager.Load("collect")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w, err := doc.Build()
//
// The Manager caches parsed documents and is safe for concurrent use.
package worldfile
