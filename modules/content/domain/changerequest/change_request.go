// Package changerequest models the approval workflow behind the back office:
// restricted editors submit a proposed mutation, an administrator approves or
// rejects it, and approval applies the mutation to the live catalog.
package changerequest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Change types. The set is closed: the decision dispatcher has an arm for
// each tag and treats anything else as corrupt data.
const (
	TypeProductCreate    = "product_create"
	TypeProductUpdate    = "product_update"
	TypeCategoryCreate   = "category_create"
	TypeCategoryUpdate   = "category_update"
	TypeSiteConfigUpdate = "site_config_update"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// KnownType reports whether t is one of the supported change types.
func KnownType(t string) bool {
	switch t {
	case TypeProductCreate, TypeProductUpdate, TypeCategoryCreate, TypeCategoryUpdate, TypeSiteConfigUpdate:
		return true
	}
	return false
}

// RequiresTarget reports whether t mutates an existing record and therefore
// needs a target id.
func RequiresTarget(t string) bool {
	switch t {
	case TypeProductUpdate, TypeCategoryUpdate:
		return true
	}
	return false
}

// DecisionStatus reports whether s is a valid terminal status for a decision.
func DecisionStatus(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// ChangeRequest is a proposed mutation awaiting review. Data holds the
// payload verbatim; it is only interpreted when the request is approved.
type ChangeRequest struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	TargetID      *uuid.UUID      `json:"targetId,omitempty"`
	Data          json.RawMessage `json:"data"`
	ChangeSummary string          `json:"changeSummary"`
	SubmittedBy   string          `json:"submittedBy"`
	SubmittedAt   time.Time       `json:"submittedAt"`
	Status        string          `json:"status"`
	DecidedBy     string          `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time      `json:"decidedAt,omitempty"`
}

// SubmitData is the submission payload. SubmittedBy and Status are accepted
// on the wire but never read: the authenticated user and the pending state
// are assigned server-side.
type SubmitData struct {
	Type          string          `json:"type"`
	TargetID      *uuid.UUID      `json:"targetId,omitempty"`
	Data          json.RawMessage `json:"data"`
	ChangeSummary string          `json:"changeSummary"`
	SubmittedBy   string          `json:"submittedBy,omitempty"`
	Status        string          `json:"status,omitempty"`
}

type FindParams struct {
	// Status filters by workflow state; empty means all.
	Status string
}

type Repository interface {
	Create(ctx context.Context, data *SubmitData, submittedBy string) (*ChangeRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ChangeRequest, error)
	// List returns requests newest-first.
	List(ctx context.Context, params FindParams) ([]*ChangeRequest, error)
	// ClaimPending moves the request from pending to status, recording the
	// deciding actor, and reports whether this call won the transition. A
	// false return means the request was already decided.
	ClaimPending(ctx context.Context, id uuid.UUID, status, decidedBy string) (bool, error)
	Count(ctx context.Context, params FindParams) (int64, error)
}
