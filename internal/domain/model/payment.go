package model

// PaymentMethod enumerates supported charge instruments.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodApplePay   PaymentMethod = "APPLE_PAY"
	PaymentMethodGooglePay  PaymentMethod = "GOOGLE_PAY"
	PaymentMethodPaypal     PaymentMethod = "PAYPAL"
)

// NormalizePaymentMethod applies the default when the request omits a method.
func NormalizePaymentMethod(m PaymentMethod) PaymentMethod {
	if m == "" {
		return PaymentMethodCreditCard
	}
	return m
}
