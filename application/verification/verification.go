package verification

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/muhammadheryan/food-delivery/cmd/config"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	redisrepo "github.com/muhammadheryan/food-delivery/repository/redis"
	txrepo "github.com/muhammadheryan/food-delivery/repository/tx"
	verificationrepo "github.com/muhammadheryan/food-delivery/repository/verification"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/thirdparty/rabbitmq"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/errors"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
)

type VerificationApp interface {
	ListRestaurants(ctx context.Context) ([]model.VerificationView, error)
	ListDrivers(ctx context.Context) ([]model.VerificationView, error)
	ListComplaints(ctx context.Context) ([]model.Complaint, error)
	DecideRestaurant(ctx context.Context, d model.Decision) (*model.VerificationView, error)
	DecideDriver(ctx context.Context, d model.Decision) (*model.VerificationView, error)
	Dashboard(ctx context.Context) (*model.DashboardSummary, error)
	// History lists the recorded decisions for one target type, newest first.
	History(ctx context.Context, target constant.VerificationTarget) ([]model.DecisionEntity, error)
}

type verificationAppImpl struct {
	config           *config.Config
	adminAPI         marketplace.AdminAPI
	txRepo           txrepo.TxRepository
	verificationRepo verificationrepo.VerificationRepository
	redisRepo        redisrepo.Repository
	publisher        *rabbitmq.Publisher
}

func NewVerificationApp(config *config.Config, adminAPI marketplace.AdminAPI, txRepo txrepo.TxRepository, verificationRepo verificationrepo.VerificationRepository, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) VerificationApp {
	return &verificationAppImpl{
		config:           config,
		adminAPI:         adminAPI,
		txRepo:           txRepo,
		verificationRepo: verificationRepo,
		redisRepo:        redisRepo,
		publisher:        publisher,
	}
}

func (s *verificationAppImpl) ListRestaurants(ctx context.Context) ([]model.VerificationView, error) {
	list, err := s.list(ctx, constant.TargetRestaurant)
	if err != nil {
		return nil, err
	}
	return newViews(list), nil
}

func (s *verificationAppImpl) ListDrivers(ctx context.Context) ([]model.VerificationView, error) {
	list, err := s.list(ctx, constant.TargetDriver)
	if err != nil {
		return nil, err
	}
	return newViews(list), nil
}

func (s *verificationAppImpl) list(ctx context.Context, target constant.VerificationTarget) ([]model.VerificationRequest, error) {
	resource, fetch := s.source(target)
	list, err := redisrepo.Cached(ctx, s.redisRepo, constant.SharedCacheKey(resource), s.config.Cache.TTL, func() ([]model.VerificationRequest, error) {
		res, err := fetch(ctx)
		return normalize(res), err
	})
	if err != nil {
		logger.Ctx(ctx).Error("[ListVerifications] fetch", zap.String("target", string(target)), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	return normalize(list), nil
}

func (s *verificationAppImpl) source(target constant.VerificationTarget) (string, func(context.Context) ([]model.VerificationRequest, error)) {
	if target == constant.TargetDriver {
		return constant.ResourceDeliveryPartners, s.adminAPI.ListDrivers
	}
	return constant.ResourceUnverifiedRestaurants, s.adminAPI.ListUnverifiedRestaurants
}

func (s *verificationAppImpl) ListComplaints(ctx context.Context) ([]model.Complaint, error) {
	key := constant.SharedCacheKey(constant.ResourceComplaints)
	res, err := redisrepo.Cached(ctx, s.redisRepo, key, s.config.Cache.TTL, func() ([]model.Complaint, error) {
		return s.adminAPI.ListComplaints(ctx)
	})
	if err != nil {
		logger.Ctx(ctx).Error("[ListComplaints] err adminAPI.ListComplaints", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}
	for i := range res {
		if res[i].Status == "" {
			res[i].Status = string(constant.VerificationPending)
		}
	}
	return res, nil
}

func (s *verificationAppImpl) History(ctx context.Context, target constant.VerificationTarget) ([]model.DecisionEntity, error) {
	if target != constant.TargetRestaurant && target != constant.TargetDriver {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	res, err := s.verificationRepo.ListDecisions(ctx, target)
	if err != nil {
		logger.Ctx(ctx).Error("[History] err verificationRepo.ListDecisions", zap.String("target", string(target)), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return res, nil
}

func (s *verificationAppImpl) DecideRestaurant(ctx context.Context, d model.Decision) (*model.VerificationView, error) {
	d.Target = constant.TargetRestaurant
	return s.decide(ctx, d, s.adminAPI.VerifyRestaurant)
}

func (s *verificationAppImpl) DecideDriver(ctx context.Context, d model.Decision) (*model.VerificationView, error) {
	d.Target = constant.TargetDriver
	return s.decide(ctx, d, s.adminAPI.VerifyDriver)
}

// decide records the decision in the ledger and forwards it upstream inside one transaction.
// The ledger row stays locked until the marketplace answered, so two admins deciding the same
// target are serialized and the second one sees the first one's status.
func (s *verificationAppImpl) decide(ctx context.Context, d model.Decision, verify func(context.Context, model.VerifyPayload) error) (*model.VerificationView, error) {
	adminID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	d.AdminID = adminID
	d.Reason = strings.TrimSpace(d.Reason)

	if strings.TrimSpace(d.ID) == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	switch d.Status {
	case constant.VerificationApproved:
	case constant.VerificationRejected:
		if !CanSubmitRejection(d.Reason) {
			return nil, errors.SetCustomError(constant.ErrInvalidReason).WithMessage("rejection reason must be at least 5 characters")
		}
	default:
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Ctx(ctx).Error("[Decide] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	entity, err := s.verificationRepo.GetDecisionTx(ctx, tx, d.Target, d.ID)
	if err != nil {
		logger.Ctx(ctx).Error("[Decide] get decision", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	var current constant.VerificationStatus
	if entity != nil {
		current = entity.Status
	} else {
		// never decided here; the marketplace may still carry a decision made elsewhere
		if current, err = s.upstreamStatus(ctx, d.Target, d.ID); err != nil {
			return nil, err
		}
	}
	if current == d.Status {
		return nil, errors.SetCustomError(constant.ErrAlreadyDecided)
	}
	if d.ExpectedStatus != "" && current != d.ExpectedStatus {
		logger.Ctx(ctx).Info("[Decide] stale view", zap.String("target_id", d.ID), zap.String("expected", string(d.ExpectedStatus)), zap.String("current", string(current)))
		return nil, errors.SetCustomError(constant.ErrDecisionConflict)
	}

	if entity == nil {
		entity = &model.DecisionEntity{TargetType: d.Target, TargetID: d.ID, Status: d.Status, Reason: d.Reason, AdminID: adminID}
		err = s.verificationRepo.InsertDecisionTx(ctx, tx, entity)
	} else {
		entity.Status, entity.Reason, entity.AdminID = d.Status, d.Reason, adminID
		err = s.verificationRepo.UpdateDecisionTx(ctx, tx, entity)
	}
	if stderrors.Is(err, verificationrepo.ErrStaleVersion) {
		return nil, errors.SetCustomError(constant.ErrDecisionConflict)
	}
	if err != nil {
		logger.Ctx(ctx).Error("[Decide] write decision", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := verify(ctx, model.VerifyPayload{ID: d.ID, Status: d.Status, Reason: d.Reason}); err != nil {
		logger.Ctx(ctx).Error("[Decide] err adminAPI verify", zap.String("target", string(d.Target)), zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Ctx(ctx).Error("[Decide] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	view := s.patchCached(ctx, d)

	resource, _ := s.source(d.Target)
	event := rabbitmq.NewEvent(constant.EventVerificationDecided, "", resource)
	event.Attributes = map[string]string{"target": string(d.Target), "id": d.ID, "status": string(d.Status)}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		logger.Ctx(ctx).Error("[Decide] publish verification decided", zap.String("error", err.Error()))
	}

	return view, nil
}

// upstreamStatus reads the target's status fresh from the marketplace. A target missing from the
// list counts as pending.
func (s *verificationAppImpl) upstreamStatus(ctx context.Context, target constant.VerificationTarget, id string) (constant.VerificationStatus, error) {
	_, fetch := s.source(target)
	list, err := fetch(ctx)
	if err != nil {
		logger.Ctx(ctx).Error("[Decide] fetch upstream status", zap.String("target", string(target)), zap.String("error", err.Error()))
		return "", marketplace.MapError(err, nil)
	}
	for _, r := range normalize(list) {
		if r.ID == id {
			return r.Status, nil
		}
	}
	return constant.VerificationPending, nil
}

// patchCached applies the decision to the cached list so the next read shows it without a refetch.
func (s *verificationAppImpl) patchCached(ctx context.Context, d model.Decision) *model.VerificationView {
	resource, _ := s.source(d.Target)
	key := constant.SharedCacheKey(resource)

	req := model.VerificationRequest{ID: d.ID, Status: d.Status, Reason: d.Reason}
	var list []model.VerificationRequest
	ok, err := s.redisRepo.GetJSON(ctx, key, &list)
	if err != nil {
		logger.Ctx(ctx).Warn("[Decide] read cached list", zap.String("error", err.Error()))
	}
	if ok {
		for i := range list {
			if list[i].ID == d.ID {
				list[i].Status, list[i].Reason = d.Status, d.Reason
				req = list[i]
			}
		}
		if err := s.redisRepo.SetJSON(ctx, key, list, s.config.Cache.TTL); err != nil {
			logger.Ctx(ctx).Warn("[Decide] patch cached list", zap.String("error", err.Error()))
			redisrepo.InvalidateQuietly(ctx, s.redisRepo, key)
		}
	}
	return &model.VerificationView{VerificationRequest: req, Actions: Actions(req.Status)}
}
