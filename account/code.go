// Package account normalizes ledger account codes. Source exports are
// inconsistent about leading zeros ("100" next to "0100"), which breaks
// joins between the transaction and trial-balance tables; every pipeline
// pads codes through this package before persisting.
package account

import "strings"

// CodeWidth is the canonical width of an account code.
const CodeWidth = 4

// ProfitCode is the reserved account code for the synthetic
// current-year profit/loss rows ("Winst lopend boekjaar").
const ProfitCode = "9999"

// Pad left-pads code with zeros to CodeWidth. Codes already at or above
// the canonical width pass through unchanged; Pad never truncates and
// never fails.
func Pad(code string) string {
	return PadWidth(code, CodeWidth)
}

// PadWidth left-pads code with zeros to the given minimum width.
func PadWidth(code string, width int) string {
	if len(code) >= width {
		return code
	}
	return strings.Repeat("0", width-len(code)) + code
}
