// services/aggregator.go
package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jeweladmin-backend/models"
)

// DetailAggregator fetches and merges one-to-many child collections into
// parent records. Each parent's child fetches run independently: a failure
// yields an empty child set for that parent only and never blocks the rest.
type DetailAggregator struct {
	client *DispatchClient

	// Limit on in-flight child fetches across one aggregation.
	MaxInFlight int
}

func NewDetailAggregator(client *DispatchClient) *DetailAggregator {
	return &DetailAggregator{client: client, MaxInFlight: 8}
}

// CategoryDetails enriches every category with its style and metal options.
// Output order matches input order.
func (a *DetailAggregator) CategoryDetails(ctx context.Context, categories []models.Category) []models.CategoryDetail {
	details := make([]models.CategoryDetail, len(categories))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(a.MaxInFlight)

	for i, cat := range categories {
		i, cat := i, cat
		details[i].Category = cat

		g.Go(func() error {
			var styles []models.StyleOption
			if err := a.client.Get(ctx, TableStyles, Alive("category_id", cat.ID), &styles); err != nil {
				zap.L().Warn("style fetch failed, continuing with empty set",
					zap.Int64("category_id", cat.ID), zap.Error(err))
				styles = nil
			}
			mu.Lock()
			details[i].Styles = styles
			mu.Unlock()
			return nil
		})
		g.Go(func() error {
			var metals []models.MetalOption
			if err := a.client.Get(ctx, TableMetals, Alive("category_id", cat.ID), &metals); err != nil {
				zap.L().Warn("metal fetch failed, continuing with empty set",
					zap.Int64("category_id", cat.ID), zap.Error(err))
				metals = nil
			}
			mu.Lock()
			details[i].Metals = metals
			mu.Unlock()
			return nil
		})
	}

	// Child errors were already absorbed per parent.
	_ = g.Wait()
	return details
}

// CategoryDetail fetches a single parent's children.
func (a *DetailAggregator) CategoryDetail(ctx context.Context, category models.Category) models.CategoryDetail {
	details := a.CategoryDetails(ctx, []models.Category{category})
	return details[0]
}

// UserDetails parses the embedded address books; user children are not
// separately fetched, so this never touches the network.
func (a *DetailAggregator) UserDetails(users []models.User) []models.UserDetail {
	details := make([]models.UserDetail, len(users))
	for i, u := range users {
		details[i] = models.UserDetail{User: u, AddressList: u.Addresses()}
	}
	return details
}
