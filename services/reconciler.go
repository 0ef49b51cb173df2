// services/reconciler.go
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"jeweladmin-backend/utils"
)

// ErrValidation marks failures caught before any network call; no partial
// state exists when it is returned.
var ErrValidation = errors.New("validation failed")

// CategoryForm is the submitted state of the category modal. Image holds an
// existing reference; Asset, when set, is a newly chosen binary that must be
// uploaded first.
type CategoryForm struct {
	Name   string
	Image  string
	Asset  *UploadAsset
	Styles []string
	Metals []string
}

// Reconciler turns submitted form state into the remote mutation sequence.
// Child collections use replace-on-update: archive every existing child row,
// then insert the current set fresh. There is no per-row diffing.
type Reconciler struct {
	client   *DispatchClient
	uploader *ImageUploader
}

func NewReconciler(client *DispatchClient, uploader *ImageUploader) *Reconciler {
	return &Reconciler{client: client, uploader: uploader}
}

// SaveCategory validates and persists the form. id is nil on create. The new
// or existing category id is returned on success.
//
// Any step failing aborts the remaining steps. Child rows already archived or
// inserted by earlier steps are not rolled back; the remote backend offers no
// transactional boundary, so the caller re-fetches and the operator retries.
func (r *Reconciler) SaveCategory(ctx context.Context, id *int64, form CategoryForm) (int64, error) {
	styles := utils.CleanEntries(form.Styles)
	metals := utils.CleanEntries(form.Metals)

	name := utils.CleanEntries([]string{form.Name})
	if len(name) == 0 {
		return 0, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(styles) == 0 {
		return 0, fmt.Errorf("%w: at least one style option is required", ErrValidation)
	}
	if len(metals) == 0 {
		return 0, fmt.Errorf("%w: at least one metal option is required", ErrValidation)
	}

	isEditing := id != nil
	verb := "create"
	if isEditing {
		verb = "update"
	}

	image := form.Image
	if form.Asset != nil {
		url, err := r.uploader.Upload(ctx, *form.Asset)
		if err != nil {
			return 0, fmt.Errorf("%s category: %w", verb, err)
		}
		image = url
	}

	data := map[string]interface{}{
		"name":  name[0],
		"slug":  utils.Slugify(name[0]),
		"image": image,
	}

	var categoryID int64
	if isEditing {
		categoryID = *id
		if err := r.client.Update(ctx, TableCategories, Alive("id", categoryID), data); err != nil {
			return 0, fmt.Errorf("update category: %w", err)
		}
		if err := r.replaceOptions(ctx, categoryID, styles, metals); err != nil {
			return 0, fmt.Errorf("update category: %w", err)
		}
		return categoryID, nil
	}

	categoryID, err := r.client.Insert(ctx, TableCategories, data)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	if err := r.insertOptions(ctx, categoryID, styles, metals); err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return categoryID, nil
}

// replaceOptions archives both existing child collections, then inserts the
// submitted set.
func (r *Reconciler) replaceOptions(ctx context.Context, categoryID int64, styles, metals []string) error {
	if err := r.client.SoftDelete(ctx, TableStyles, Alive("category_id", categoryID)); err != nil {
		return err
	}
	if err := r.client.SoftDelete(ctx, TableMetals, Alive("category_id", categoryID)); err != nil {
		return err
	}
	return r.insertOptions(ctx, categoryID, styles, metals)
}

// insertOptions inserts every child row; insertions run concurrently and are
// joined before returning.
func (r *Reconciler) insertOptions(ctx context.Context, categoryID int64, styles, metals []string) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range styles {
		s := s
		g.Go(func() error {
			_, err := r.client.Insert(gctx, TableStyles, map[string]interface{}{
				"category_id": categoryID,
				"name":        s,
			})
			return err
		})
	}
	for _, m := range metals {
		m := m
		g.Go(func() error {
			_, err := r.client.Insert(gctx, TableMetals, map[string]interface{}{
				"category_id": categoryID,
				"name":        m,
			})
			return err
		})
	}
	return g.Wait()
}

// IsValidationError reports whether err was caught before any network call.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
