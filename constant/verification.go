package constant

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type VerificationTarget string

const (
	TargetRestaurant VerificationTarget = "restaurant"
	TargetDriver     VerificationTarget = "driver"
)

// MinRejectionReasonLength is the shortest accepted rejection reason, in characters.
const MinRejectionReasonLength = 5
