// Package models defines the persisted records of Swiff.
//
// People are identified by email address throughout: a bill participant, a
// group member and a settlement party are all plain email strings, and a
// registered User is the account behind one of those emails. Models hold
// amounts as money.Money; the split and balance math lives in the calculator
// package, which works on these records after the service layer converts them.
//
// Relationships are expressed with ID strings rather than pointers.
package models
