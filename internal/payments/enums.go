package payments

// PaymentMethod is how the registration fee is (notionally) paid
type PaymentMethod string

const (
	MethodOnlineBanking PaymentMethod = "online-banking"
	MethodCreditCard    PaymentMethod = "credit-card"
	MethodEWallet       PaymentMethod = "e-wallet"
)

// Methods lists the supported methods in display order
var Methods = []PaymentMethod{MethodOnlineBanking, MethodCreditCard, MethodEWallet}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodOnlineBanking, MethodCreditCard, MethodEWallet:
		return true
	}
	return false
}
