// Package league turns decoded sheet rows into the RLOL view models.
//
// Every builder here is a pure function from tabular rows to plain values:
// teams, the weekly schedule, standings, player stat lines and the hub
// summary. Columns are pulled through the shared alias table in fields.go
// so each page tolerates the header spellings the league's sheets use.
// Nothing in this package performs I/O.
package league
