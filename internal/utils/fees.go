package utils

// TotalCharge is the full amount the renter pays for a booking: the rental
// amount plus the insurance and platform fees, in whole currency units.
func TotalCharge(amount, insuranceFee, platformFee int64) int64 {
	return amount + insuranceFee + platformFee
}

// ToMinorUnits converts a whole-unit amount to the sub-unit precision the
// payment gateway requires (e.g. rupees to paise).
func ToMinorUnits(amount int64) int64 {
	return amount * 100
}
