package model

import (
	"time"

	"github.com/muhammadheryan/food-delivery/constant"
)

// VerificationRequest is a restaurant or driver waiting for (or past) admin review.
type VerificationRequest struct {
	ID      string                      `json:"_id"`
	Name    string                      `json:"name"`
	Email   string                      `json:"email,omitempty"`
	Phone   string                      `json:"phone,omitempty"`
	Address string                      `json:"address,omitempty"`
	Status  constant.VerificationStatus `json:"status"`
	Reason  string                      `json:"reason,omitempty"`
}

// VerificationActions mirrors the accept/reject buttons of the admin views.
type VerificationActions struct {
	Accept bool `json:"accept"`
	Reject bool `json:"reject"`
}

type VerificationView struct {
	VerificationRequest
	Actions VerificationActions `json:"actions"`
}

type DecisionRequest struct {
	Status         constant.VerificationStatus `json:"status" validate:"oneof=approved rejected"`
	Reason         string                      `json:"reason"`
	ExpectedStatus constant.VerificationStatus `json:"expected_status"`
}

type Decision struct {
	Target         constant.VerificationTarget
	ID             string
	Status         constant.VerificationStatus
	Reason         string
	ExpectedStatus constant.VerificationStatus
	AdminID        string
}

// VerifyPayload is the body of the marketplace verify endpoints.
type VerifyPayload struct {
	ID     string                      `json:"id"`
	Status constant.VerificationStatus `json:"status"`
	Reason string                      `json:"reason,omitempty"`
}

// DecisionEntity is one row of the verification_decision ledger.
type DecisionEntity struct {
	ID         uint64                      `db:"id" json:"id"`
	TargetType constant.VerificationTarget `db:"target_type" json:"target_type"`
	TargetID   string                      `db:"target_id" json:"target_id"`
	Status     constant.VerificationStatus `db:"status" json:"status"`
	Reason     string                      `db:"reason" json:"reason,omitempty"`
	AdminID    string                      `db:"admin_id" json:"admin_id"`
	Version    int64                       `db:"version" json:"version"`
	DecidedAt  time.Time                   `db:"decided_at" json:"decided_at"`
}

type Complaint struct {
	ID        string    `json:"_id"`
	User      Ref       `json:"user"`
	Order     Ref       `json:"order"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardSummary struct {
	Orders      int     `json:"orders"`
	Delivered   int     `json:"delivered"`
	Cancelled   int     `json:"cancelled"`
	Revenue     string  `json:"revenue"`
	Users       int     `json:"users"`
	Reviews     int     `json:"reviews"`
	AvgRating   float64 `json:"avg_rating"`
	Restaurants int     `json:"restaurants"`
	Pending     int     `json:"pending_verifications"`
}

type Review struct {
	ID      string `json:"_id"`
	Order   Ref    `json:"order"`
	User    Ref    `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
