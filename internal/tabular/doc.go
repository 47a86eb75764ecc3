// Package tabular decodes published spreadsheet CSV exports into rows.
//
// The decoder is deliberately forgiving: quoted fields may hold commas, line
// breaks and doubled quotes, blank lines are skipped, and ragged rows are
// padded or truncated to the header. Columns are looked up through alias
// lists so the same code works across sheets that spell their headers
// differently ("team", "Team Name", "team_name"). The only hard failure is
// a body that is not CSV at all, such as an HTML login or error page.
package tabular
