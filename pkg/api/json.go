// Package api holds the JSON plumbing shared by every HTTP controller:
// response envelopes, error rendering and strict request decoding.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func WriteJSON[T any](w http.ResponseWriter, status int, payload T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// WriteError renders err as the API error envelope. Errors that are not a
// *serrors.BaseError are reported as INTERNAL without leaking their text.
func WriteError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, err error) {
	requestID := composables.UseRequestID(r.Context())

	var base *serrors.BaseError
	if !errors.As(err, &base) {
		base = serrors.New(http.StatusInternalServerError, serrors.CodeInternal, "internal server error", err)
	}

	entry := logger.WithFields(logrus.Fields{
		"code":       base.Code,
		"status":     base.Status,
		"request-id": requestID,
		"path":       r.URL.Path,
	})
	if base.Status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
	}

	WriteJSON(w, base.Status, errorResponse{Error: errorBody{
		Code:      base.Code,
		Message:   base.Message,
		RequestID: requestID,
	}})
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.NewValidation("invalid JSON payload: " + err.Error())
	}
	return nil
}

// DecodeJSONString decodes an embedded JSON document, e.g. the "data" field
// of a multipart form, with the same strictness as DecodeJSON.
func DecodeJSONString(s string, dst any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.NewValidation("invalid JSON payload: " + err.Error())
	}
	return nil
}
