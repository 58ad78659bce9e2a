// Package ccs provides the native value model of the coordinate conversion
// service: coordinate-system parameters, coordinate tuples and accuracy
// estimates.
//
// Every family is a sealed interface. Only the variant types declared in this
// package implement it, so consumers can switch exhaustively over the
// concrete types instead of inspecting fields at runtime.
//
// Key design constraints:
//   - A variant carries only the fields relevant to it; there are no optional
//     "maybe set" fields shared across variants
//   - All variant types are comparable, so == is value equality
//   - Values are transient and returned by value; the caller owns them
//
// This package imports nothing internal.
package ccs
