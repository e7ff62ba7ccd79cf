// Package locale classifies the directories of a localization resource tree.
//
// A resource root holds one directory per locale. Directory names follow a
// grammar built from a namespace prefix and a region qualifier pattern:
//
//	values          default resources (no locale)
//	values-ar       base directory for Arabic
//	values-ar-rSA   variant directory for Arabic in Saudi Arabia
//
// The variant's base name is derived by dropping the region qualifier
// (values-ar-rSA -> values-ar). Names that start with the prefix but carry a
// malformed qualifier (values-es-rar) are neither base nor variant.
//
// Grammar and ExceptionSet are plain values so callers can thread alternate
// policies into the scanner and the consolidation engine.
package locale
