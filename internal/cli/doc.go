// Package cli implements the command-line interface for rlol.
//
// The cli package provides the Cobra-based CLI: views of the league data
// (hub, teams, schedule, standings, stats) as text or JSON, the static site
// build, the preview server, and workbook and calendar exports. It wires
// configuration, logging and the fetch layer for every command.
package cli
