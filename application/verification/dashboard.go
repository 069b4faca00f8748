package verification

import (
	"context"
	"strconv"

	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/muhammadheryan/food-delivery/thirdparty/marketplace"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dashboard loads every admin list concurrently and reduces them to counts.
func (s *verificationAppImpl) Dashboard(ctx context.Context) (*model.DashboardSummary, error) {
	var (
		orders      []model.Order
		users       []model.MarketplaceUser
		reviews     []model.Review
		restaurants []model.VerificationRequest
		drivers     []model.VerificationRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.adminAPI.ListAllOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.adminAPI.ListUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.adminAPI.ListReviews(gctx)
		return err
	})
	g.Go(func() (err error) {
		restaurants, err = s.adminAPI.ListUnverifiedRestaurants(gctx)
		return err
	})
	g.Go(func() (err error) {
		drivers, err = s.adminAPI.ListDrivers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Ctx(ctx).Error("[Dashboard] load admin lists", zap.String("error", err.Error()))
		return nil, marketplace.MapError(err, nil)
	}

	return Summarize(orders, users, reviews, normalize(restaurants), normalize(drivers)), nil
}

// Summarize counts orders by outcome; revenue excludes cancelled orders.
func Summarize(orders []model.Order, users []model.MarketplaceUser, reviews []model.Review, restaurants, drivers []model.VerificationRequest) *model.DashboardSummary {
	sum := &model.DashboardSummary{
		Orders:      len(orders),
		Users:       len(users),
		Reviews:     len(reviews),
		Restaurants: len(restaurants),
	}

	var revenue float64
	for _, o := range orders {
		switch o.Status {
		case constant.OrderStatusDelivered:
			sum.Delivered++
		case constant.OrderStatusCancelled:
			sum.Cancelled++
			continue
		}
		revenue += o.TotalAmount
	}
	sum.Revenue = strconv.FormatFloat(revenue, 'f', 2, 64)

	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		sum.AvgRating = float64(total) / float64(len(reviews))
	}

	for _, list := range [][]model.VerificationRequest{restaurants, drivers} {
		for _, r := range list {
			if r.Status == constant.VerificationPending {
				sum.Pending++
			}
		}
	}
	return sum
}
