// Package command enumerates, per capability tier, the world operations a
// foreign program may invoke, and builds the name-to-operation tables that
// back restricted program execution.
//
// Tiers:
//
// Three tiers form a strictly nested hierarchy. The normal tier exposes
// movement, turning left, ball handling, and the sensor queries. The super
// tier adds turn_right and turn_around. The ultra tier adds the color name
// table, paint, and color_is.
//
// Usage:
//
//	table, err := command.NewTable(w, command.TierSuper)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := table["move"].Call(); err != nil {
//		log.Fatal(err)
//	}
//
// Every callable entry is bound to the World passed to NewTable, so calling
// it queries or mutates that world. The table is the entire world-operation
// surface handed to an executed program; operations outside the chosen tier
// are not reachable through it.
package command
