package verification

import (
	"strings"
	"unicode/utf8"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

// Actions mirrors the admin buttons: accept is disabled once approved, reject once rejected.
func Actions(s constant.VerificationStatus) model.VerificationActions {
	return model.VerificationActions{
		Accept: s != constant.VerificationApproved,
		Reject: s != constant.VerificationRejected,
	}
}

func CanSubmitRejection(reason string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(reason)) >= constant.MinRejectionReasonLength
}

// normalize reports an absent status as pending.
func normalize(list []model.VerificationRequest) []model.VerificationRequest {
	for i := range list {
		if list[i].Status == "" {
			list[i].Status = constant.VerificationPending
		}
	}
	return list
}

func newViews(list []model.VerificationRequest) []model.VerificationView {
	res := make([]model.VerificationView, 0, len(list))
	for _, r := range list {
		res = append(res, model.VerificationView{VerificationRequest: r, Actions: Actions(r.Status)})
	}
	return res
}
