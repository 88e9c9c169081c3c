package booking

// PaymentRequiredMinGuests is the party size at which a deposit is required
// before an admin ever sees the booking.
const PaymentRequiredMinGuests = 6

const (
	MinGuests = 1
	MaxGuests = 20
)

// RequiresPayment decides the initial lifecycle branch: parties at or above
// the threshold start in AWAITING_PAYMENT instead of PENDING.
func RequiresPayment(guests int) bool {
	return guests >= PaymentRequiredMinGuests
}
