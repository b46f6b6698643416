// Package avgcost implements the weighted-average inventory costing
// arithmetic shared by the purchase document operations.
//
// All arithmetic is plain 64-bit floating point with no rounding; display
// formatting is a presentation concern.
package avgcost

// Apply folds an incoming stock movement into the current position and
// returns the new quantity and weighted-average unit cost.
//
//	newCost = (oldQty*oldCost + qty*unitPrice + extraCharge) / (oldQty + qty)
//
// When the resulting quantity is zero or negative the average is undefined;
// the cost falls back to fallbackUnitCost (the line's effective unit cost
// including its share of extra charges) instead of dividing by zero.
func Apply(oldQty, oldCost, qty, unitPrice, extraCharge, fallbackUnitCost float64) (newQty, newCost float64) {
	oldValue := oldQty * oldCost
	incomingValue := qty*unitPrice + extraCharge

	newQty = oldQty + qty
	if newQty > 0 {
		newCost = (oldValue + incomingValue) / newQty
	} else {
		newCost = fallbackUnitCost
	}
	return newQty, newCost
}

// Reverse removes a previously applied movement from the current position.
// It is the inverse of Apply for the quantity/value pair recorded on the
// line being reversed:
//
//	newCost = (curQty*curCost - qty*lineUnitPrice) / (curQty - qty)
//
// When the divisor is zero or negative the average cannot be derived and the
// cost collapses to zero.
func Reverse(curQty, curCost, qty, lineUnitPrice float64) (newQty, newCost float64) {
	curValue := curQty * curCost

	newQty = curQty - qty
	if newQty > 0 {
		newCost = (curValue - qty*lineUnitPrice) / newQty
	} else {
		newCost = 0
	}
	return newQty, newCost
}
