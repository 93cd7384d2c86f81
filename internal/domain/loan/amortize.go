package loan

import "math"

// AnnualInterestRate is the fixed annual rate (percent) applied to every
// funded loan.
const AnnualInterestRate = 12.0

// All EMI and balance arithmetic lives in this file so a decimal type could
// replace float64 without touching call sites. Values are double-precision
// throughout; no rounding is applied (display rounding is a client concern).

// EMI computes the fixed monthly installment for an amortizing loan:
//
//	r = annualRate/12/100
//	emi = P·r·(1+r)^n / ((1+r)^n − 1)
//
// Callers must guard tenureMonths > 0; the denominator is zero otherwise.
func EMI(principal float64, annualRate float64, tenureMonths int) float64 {
	monthlyRate := annualRate / 12 / 100
	pow := math.Pow(1+monthlyRate, float64(tenureMonths))
	return principal * monthlyRate * pow / (pow - 1)
}

// NextBalance applies one full EMI to the running balance. The result may go
// negative on the final installment; the stored value is never clamped.
func NextBalance(principalLeft, emi float64) float64 {
	return principalLeft - emi
}

// Retired reports whether a balance counts as fully repaid.
func Retired(principalLeft float64) bool {
	return principalLeft <= 0
}

// ClampedBalance is the display/aggregation view of a balance: repaid or
// overpaid loans never contribute negative amounts.
func ClampedBalance(principalLeft float64) float64 {
	return math.Max(principalLeft, 0)
}

// InterestOutstanding approximates the interest still owed on a loan,
// computed against the current (possibly amortized) balance:
//
//	principalLeft · annualRate · tenureMonths / 100
//
// It shrinks as the loan is repaid, so it is a dashboard figure rather than
// a stable accrual.
func InterestOutstanding(principalLeft, annualRate float64, tenureMonths int) float64 {
	return principalLeft * annualRate * float64(tenureMonths) / 100
}
