// Package cargo tracks goods and shipments moved over the Railyard
// fleet.
//
// The cargo package is a consumer of the consist core: it keeps a
// product catalogue ordered by barcode, imports products and shipment
// records from plain text files, merges shipments per product, and
// aggregates volume and revenue totals for reporting. Prices are
// decimal values to keep money arithmetic exact.
//
// File formats:
//
//	products file:  one "barcode, title, price" record per line
//	shipment files: one "barcode, count" record per line
//
// Corrupt or incomplete lines are skipped and counted rather than
// aborting the import.
package cargo
