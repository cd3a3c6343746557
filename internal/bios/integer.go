package bios

// IntegerAttribute is a BIOS integer attribute bounded by a range and
// stepped by a scalar increment.
type IntegerAttribute struct {
	Name            string
	ReadOnly        bool
	LowerBound      int64
	UpperBound      int64
	ScalarIncrement int64
	Default         int64
}

// Valid reports whether value falls within bounds and lands on an
// increment boundary, the standard PLDM BIOS integer-info check.
func (a IntegerAttribute) Valid(value int64) bool {
	if value < a.LowerBound || value > a.UpperBound {
		return false
	}
	if a.ScalarIncrement == 0 {
		return true
	}
	return (value-a.LowerBound)%a.ScalarIncrement == 0
}

// scalarIncrementDividesRange reports whether ScalarIncrement evenly
// divides (UpperBound - LowerBound), required at ingestion time so every
// value between the bounds is reachable by whole increments.
func (a IntegerAttribute) scalarIncrementDividesRange() bool {
	if a.ScalarIncrement == 0 {
		return a.UpperBound == a.LowerBound
	}
	return (a.UpperBound-a.LowerBound)%a.ScalarIncrement == 0
}
