package common

// RoundDiv divides two non-negative integers and rounds half up. It returns 0
// when den is 0.
func RoundDiv(num, den int) int {
	if den <= 0 {
		return 0
	}

	return (2*num + den) / (2 * den)
}

// RoundPercent is round(100 * part / total).
func RoundPercent(part, total int) int {
	return RoundDiv(100*part, total)
}
