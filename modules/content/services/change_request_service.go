package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/domain/product"
	"github.com/docesofia/storefront/modules/content/domain/changerequest"
	"github.com/docesofia/storefront/modules/content/domain/siteconfig"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/metrics"
	"github.com/docesofia/storefront/pkg/serrors"
)

// ChangeRequestService owns the approval workflow: submission, review
// listing and the decision that applies an approved mutation.
type ChangeRequestService struct {
	repo       changerequest.Repository
	products   product.Repository
	categories category.Repository
	siteConfig siteconfig.Repository
	logger     *logrus.Logger

	// inTx is swappable so tests can run the decision path without a pool.
	inTx func(ctx context.Context, fn func(context.Context) error) error
}

func NewChangeRequestService(
	repo changerequest.Repository,
	products product.Repository,
	categories category.Repository,
	siteConfig siteconfig.Repository,
	logger *logrus.Logger,
) *ChangeRequestService {
	return &ChangeRequestService{
		repo:       repo,
		products:   products,
		categories: categories,
		siteConfig: siteConfig,
		logger:     logger,
		inTx:       composables.InTx,
	}
}

// Submit records a proposed mutation. The request always starts out pending
// with a server-assigned timestamp; client attempts to set either are
// ignored because the payload carries neither field.
func (s *ChangeRequestService) Submit(ctx context.Context, data *changerequest.SubmitData) (*changerequest.ChangeRequest, error) {
	if data.Type == "" {
		return nil, serrors.NewFieldRequired("type")
	}
	if !changerequest.KnownType(data.Type) {
		return nil, serrors.NewValidation("unsupported change type " + data.Type)
	}
	if changerequest.RequiresTarget(data.Type) && data.TargetID == nil {
		return nil, serrors.NewFieldRequired("targetId")
	}
	if len(data.Data) == 0 {
		return nil, serrors.NewFieldRequired("data")
	}
	if data.ChangeSummary == "" {
		return nil, serrors.NewFieldRequired("changeSummary")
	}

	u, err := composables.UseUser(ctx)
	if err != nil {
		return nil, serrors.NewUnauthorized()
	}

	created, err := s.repo.Create(ctx, data, u.Email)
	if err != nil {
		return nil, err
	}

	metrics.ChangeRequestsSubmitted.WithLabelValues(created.Type).Inc()
	s.logger.WithFields(logrus.Fields{
		"id":   created.ID,
		"type": created.Type,
		"by":   created.SubmittedBy,
	}).Info("change request submitted")
	return created, nil
}

func (s *ChangeRequestService) GetByID(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns change requests newest-first, optionally filtered by status.
func (s *ChangeRequestService) List(ctx context.Context, params changerequest.FindParams) ([]*changerequest.ChangeRequest, error) {
	return s.repo.List(ctx, params)
}

// Decide moves a pending request to its terminal status. The transition is a
// conditional write on status = pending, so concurrent decisions on the same
// request cannot both win; the loser gets a conflict. Approval applies the
// proposed mutation inside the same transaction. If applying fails, the
// transaction rolls back and the request stays pending for a later retry.
func (s *ChangeRequestService) Decide(ctx context.Context, id uuid.UUID, status string) error {
	if !changerequest.DecisionStatus(status) {
		return serrors.NewValidation("status must be approved or rejected")
	}

	u, err := composables.UseUser(ctx)
	if err != nil {
		return serrors.NewUnauthorized()
	}

	err = s.inTx(ctx, func(txCtx context.Context) error {
		cr, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		claimed, err := s.repo.ClaimPending(txCtx, id, status, u.Email)
		if err != nil {
			return err
		}
		if !claimed {
			return serrors.NewConflict("change request is already " + cr.Status)
		}

		if status == changerequest.StatusApproved {
			if err := s.apply(txCtx, cr); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.ChangeRequestDecisions.WithLabelValues(status).Inc()
	s.logger.WithFields(logrus.Fields{"id": id, "status": status}).Info("change request decided")
	return nil
}

// apply dispatches the stored mutation to the owning resource repository.
// The tag set is closed; anything else is corrupt data.
func (s *ChangeRequestService) apply(ctx context.Context, cr *changerequest.ChangeRequest) error {
	switch cr.Type {
	case changerequest.TypeProductCreate:
		var data product.CreateData
		if err := unmarshalData(cr.Data, &data); err != nil {
			return err
		}
		_, err := s.products.Create(ctx, &data)
		return err

	case changerequest.TypeProductUpdate:
		if cr.TargetID == nil {
			return serrors.NewFieldRequired("targetId")
		}
		var data product.UpdateData
		if err := unmarshalData(cr.Data, &data); err != nil {
			return err
		}
		_, err := s.products.Update(ctx, *cr.TargetID, &data)
		return err

	case changerequest.TypeCategoryCreate:
		var data category.CreateData
		if err := unmarshalData(cr.Data, &data); err != nil {
			return err
		}
		_, err := s.categories.Create(ctx, &data)
		return err

	case changerequest.TypeCategoryUpdate:
		if cr.TargetID == nil {
			return serrors.NewFieldRequired("targetId")
		}
		var data category.UpdateData
		if err := unmarshalData(cr.Data, &data); err != nil {
			return err
		}
		_, err := s.categories.Update(ctx, *cr.TargetID, &data)
		return err

	case changerequest.TypeSiteConfigUpdate:
		var data siteconfig.UpdateData
		if err := unmarshalData(cr.Data, &data); err != nil {
			return err
		}
		_, err := s.siteConfig.Update(ctx, &data)
		return err

	default:
		s.logger.WithFields(logrus.Fields{"id": cr.ID, "type": cr.Type}).
			Error("change request carries an unknown type")
		return serrors.NewUnknownChangeType(cr.Type)
	}
}

func unmarshalData(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return serrors.NewValidation("malformed change data: " + err.Error())
	}
	return nil
}
