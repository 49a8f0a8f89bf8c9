package voltax

// PaymentStatus is the canonical status vocabulary every provider-specific
// status maps onto. A provider value outside the documented set always maps
// to StatusPending rather than failing, so an ambiguous gateway response can
// never be mistaken for a definitive outcome.
type PaymentStatus string

const (
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailed  PaymentStatus = "FAILED"
	StatusPending PaymentStatus = "PENDING"
)

// Currency codes supported across the providers. Adapters pass the code
// through to the gateway unchanged; only Paystack re-encodes the amount in
// minor units.
type Currency string

const (
	GHS Currency = "GHS"
	NGN Currency = "NGN"
	USD Currency = "USD"
	KES Currency = "KES"
	ZAR Currency = "ZAR"
)

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	switch c {
	case GHS, NGN, USD, KES, ZAR:
		return true
	}
	return false
}

// PaystackChannel is a payment channel accepted by Paystack's initialize
// endpoint.
type PaystackChannel string

const (
	ChannelCard         PaystackChannel = "card"
	ChannelBank         PaystackChannel = "bank"
	ChannelApplePay     PaystackChannel = "apple_pay"
	ChannelUSSD         PaystackChannel = "ussd"
	ChannelQR           PaystackChannel = "qr"
	ChannelMobileMoney  PaystackChannel = "mobile_money"
	ChannelBankTransfer PaystackChannel = "bank_transfer"
	ChannelEFT          PaystackChannel = "eft"
	ChannelPayattitude  PaystackChannel = "payattitude"
)

// Valid reports whether c is a recognized Paystack channel.
func (c PaystackChannel) Valid() bool {
	switch c {
	case ChannelCard, ChannelBank, ChannelApplePay, ChannelUSSD, ChannelQR,
		ChannelMobileMoney, ChannelBankTransfer, ChannelEFT, ChannelPayattitude:
		return true
	}
	return false
}
