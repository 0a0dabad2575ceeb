// Package models defines the core domain models for Wanderlust.
//
// # Models
//
//   - User: registered account (email + password auth)
//   - Trip: a group trip with members and a single currency
//   - Expense / Split: a shared cost and its per-member division
//   - Settlement: a recorded payment between members to clear debts
//   - Balance: derived per-member paid/owed totals (never persisted)
//   - ItineraryItem: a scheduled activity, guarded by optimistic locking
//   - Poll / PollOption / Vote: group decision making, also guarded
//
// # Conventions
//
//  1. Relationships use ID strings, not pointers, to avoid cycles
//  2. Monetary amounts are decimal.Decimal with 2-decimal precision
//     at every boundary; floats never touch money
//  3. CreatedAt fields are Unix seconds; UpdatedAt fields on editable
//     records are Unix microseconds and double as the optimistic-lock
//     version (see the occ package)
package models
