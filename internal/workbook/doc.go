// Package workbook exports league data as an XLSX workbook with one sheet
// per table.
package workbook
