// Package carscrape extracts structured vehicle-listing data from
// heterogeneous dealer web pages without executing page scripts. Pages are
// matched against a fixed, finite set of structural templates; whatever raw
// fields the winning template extracts are normalized into one canonical
// record schema with explicit absence markers.
//
// This package contains domain types, interfaces, and the pure core: the
// template registry, the scoring-based detector, the field normalizers, and
// the result assembler. Implementations live in subdirectories named after
// their primary dependency (e.g., goquery/, sqlite/, rod/).
package carscrape
