// Package api defines the request and response messages of the Swiff RPC
// services. Messages travel as JSON; money amounts are decimal strings
// ("12.50") and percentages are decimal strings of percent ("33.33").
// proto/swiff/v1 describes the same services and messages for buf.
package api

// DateLayout is the wire format of due dates.
const DateLayout = "2006-01-02"
