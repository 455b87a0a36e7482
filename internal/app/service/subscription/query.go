package subscription

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/types"
)

// GetUserSubscriptionInfo returns the API view of the user's subscription,
// with the derived premium entitlement flag. A user with no row gets a
// zero-value info with Premium false.
func (s *Service) GetUserSubscriptionInfo(ctx context.Context, userID string) (*types.UserSubscriptionInfo, error) {
	row, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &types.UserSubscriptionInfo{Premium: false}, nil
	}
	return &types.UserSubscriptionInfo{
		Status:             row.Status,
		PlanType:           row.PlanType,
		CurrentPeriodStart: row.CurrentPeriodStart,
		CurrentPeriodEnd:   row.CurrentPeriodEnd,
		Premium:            row.Entitled(time.Now()),
	}, nil
}

// CustomerIDForUser returns the Stripe customer id recorded for the user,
// empty when the user never checked out.
func (s *Service) CustomerIDForUser(ctx context.Context, userID string) (string, error) {
	row, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", nil
	}
	return row.StripeCustomerID, nil
}

// IsEntitled reports whether the user currently has premium access.
func (s *Service) IsEntitled(ctx context.Context, userID string) (bool, error) {
	row, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return row.Entitled(time.Now()), nil
}

type ScanSubscriptionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanSubscriptionsResponse struct {
	Items []*models.Subscription `json:"items"`
	Total int64                  `json:"total"`
}

// filtersWhere wraps a list of filters into a single clause.Expression.
type filtersWhere struct{ filters []*types.CommonFilter }

func (w filtersWhere) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, f := range w.filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		f.Build(builder)
	}
}

// ScanSubscriptions is the admin listing: filtered, paginated, sorted.
func (s *Service) ScanSubscriptions(ctx context.Context, req *ScanSubscriptionsRequest) (*ScanSubscriptionsResponse, error) {
	if req.Size <= 0 || req.Size > 1000 {
		req.Size = 100
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "updated_at"
	}
	sortOrder := req.SortOrder
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	q := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Clauses(clause.Where{Exprs: []clause.Expression{filtersWhere{filters: req.Filters}}})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var items []*models.Subscription
	if err := q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: sortOrder == "desc"}).
		Offset(req.From).Limit(req.Size).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}

	return &ScanSubscriptionsResponse{Items: items, Total: total}, nil
}
