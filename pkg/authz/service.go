package authz

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/pkg/serrors"
)

// Service answers "can this actor perform this action on this resource". It
// is constructed once in main and handed to every controller; there is no
// ambient accessor.
type Service struct {
	enforcer *casbin.Enforcer
	logger   *logrus.Entry
	mu       sync.RWMutex
}

func NewService(modelPath, policyPath string, logger *logrus.Logger) (*Service, error) {
	enf, err := casbin.NewEnforcer(modelPath, fileadapter.NewAdapter(policyPath))
	if err != nil {
		return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}
	if err := enf.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: failed to load policies: %w", err)
	}
	return &Service{
		enforcer: enf,
		logger:   logger.WithField("component", "authz"),
	}, nil
}

// ObjectName builds a dotted object identifier, e.g. "catalog.products".
func ObjectName(module, resource string) string {
	return module + "." + resource
}

// SubjectForRole builds the policy subject for a role name.
func SubjectForRole(role string) string {
	return "role:" + strings.TrimSpace(role)
}

// Can evaluates the policy without side effects.
func (s *Service) Can(ctx context.Context, subject, object, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("authz: enforce failed: %w", err)
	}
	return allowed, nil
}

// Authorize returns a forbidden error if the request is denied.
func (s *Service) Authorize(ctx context.Context, subject, object, action string) error {
	allowed, err := s.Can(ctx, subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.WithContext(ctx).WithFields(logrus.Fields{
			"subject": subject,
			"object":  object,
			"action":  action,
		}).Warn("authz denied request")
		return serrors.NewForbidden()
	}
	return nil
}
