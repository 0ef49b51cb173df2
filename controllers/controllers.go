package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/config"
	"jeweladmin-backend/models"
	"jeweladmin-backend/services"
)

var (
	cfg        *config.Config
	client     *services.DispatchClient
	creds      *services.CredentialStore
	aggregator *services.DetailAggregator
	reconciler *services.Reconciler
	uploader   *services.ImageUploader
	notifier   *services.EnquiryNotifier
	auditor    *services.AuditRecorder

	categoryStore *services.ListStore[models.CategoryDetail]
	enquiryStore  *services.ListStore[models.Enquiry]
	featureStore  *services.ListStore[models.FeatureSection]
	audienceStore *services.ListStore[models.TargetAudience]
	userStore     *services.ListStore[models.UserDetail]
)

// Init wires the controller layer to its collaborators and registers every
// entity store with the cache refresher.
func Init(
	c *config.Config,
	dispatch *services.DispatchClient,
	credentials *services.CredentialStore,
	up *services.ImageUploader,
	notify *services.EnquiryNotifier,
	audit *services.AuditRecorder,
	refresher *services.Refresher,
) {
	cfg = c
	client = dispatch
	creds = credentials
	uploader = up
	notifier = notify
	auditor = audit
	aggregator = services.NewDetailAggregator(dispatch)
	reconciler = services.NewReconciler(dispatch, up)

	categoryStore = services.NewListStore("categories",
		func(ctx context.Context) ([]models.CategoryDetail, error) {
			var categories []models.Category
			if err := client.Get(ctx, services.TableCategories, services.Alive(), &categories); err != nil {
				return nil, err
			}
			return aggregator.CategoryDetails(ctx, categories), nil
		},
		func(d models.CategoryDetail) []string { return []string{d.Name, d.Slug} },
	)

	enquiryStore = services.NewListStore("enquiries",
		func(ctx context.Context) ([]models.Enquiry, error) {
			var enquiries []models.Enquiry
			err := client.Get(ctx, services.TableEnquiries, services.Alive(), &enquiries)
			return enquiries, err
		},
		func(e models.Enquiry) []string { return []string{e.ProductTitle, e.Response} },
	)

	featureStore = services.NewListStore("features",
		func(ctx context.Context) ([]models.FeatureSection, error) {
			var features []models.FeatureSection
			err := client.Get(ctx, services.TableFeatures, services.Alive(), &features)
			return features, err
		},
		func(f models.FeatureSection) []string { return []string{f.Title} },
	)

	audienceStore = services.NewListStore("audiences",
		func(ctx context.Context) ([]models.TargetAudience, error) {
			var audiences []models.TargetAudience
			err := client.Get(ctx, services.TableAudiences, services.Alive(), &audiences)
			return audiences, err
		},
		func(a models.TargetAudience) []string { return []string{a.Gender} },
	)

	userStore = services.NewListStore("users",
		func(ctx context.Context) ([]models.UserDetail, error) {
			var users []models.User
			if err := client.Get(ctx, services.TableUsers, services.Alive(), &users); err != nil {
				return nil, err
			}
			return aggregator.UserDetails(users), nil
		},
		func(u models.UserDetail) []string {
			return []string{u.FullName, u.Email, u.Phone, models.AddressText(u.AddressList)}
		},
	)

	refresher.Register("categories", categoryStore.Refresh)
	refresher.Register("enquiries", enquiryStore.Refresh)
	refresher.Register("features", featureStore.Refresh)
	refresher.Register("audiences", audienceStore.Refresh)
	refresher.Register("users", userStore.Refresh)
}

// actorID is the staff user id the auth middleware stored on the context.
func actorID(c *gin.Context) string {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
