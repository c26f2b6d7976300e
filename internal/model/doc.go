// Package model defines the core data types shared across stocklens.
//
// Conventions:
//   - Calendar dates: time.Time at UTC midnight, no time component
//   - Timestamps: time.Time (stored as timestamptz)
//   - Prices: float64 (provider-native decimals)
//   - Nullable fields: pointers, nil maps to SQL NULL
package model
