// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

// Package validation validates decoded API request bodies with
// go-playground/validator.
//
// One validator instance is shared process-wide; it caches struct metadata
// and is safe for concurrent use. Field names in errors are the JSON names
// of the fields, so messages read the way clients wrote the body:
//
//	type presetRequest struct {
//	    Preset string `json:"preset" validate:"required,oneof=last_12h last_24h last_7d last_30d custom"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// The custom "mapzoom" tag accepts tile zoom levels 0 through 22.
package validation
