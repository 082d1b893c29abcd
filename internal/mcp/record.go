package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/clearform/intake/internal/extract"
	"github.com/clearform/intake/internal/formfill"
	"github.com/clearform/intake/internal/profile"
	"github.com/clearform/intake/internal/store"
)

// recordFromResult serializes a pipeline result into a storable record.
func recordFromResult(source, transcriptText string, result *extract.Result) (*store.Record, error) {
	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	confidenceJSON, err := json.Marshal(result.Confidence)
	if err != nil {
		return nil, fmt.Errorf("encoding confidence: %w", err)
	}
	return &store.Record{
		Source:         source,
		Transcript:     transcriptText,
		ProfileJSON:    string(profileJSON),
		ConfidenceJSON: string(confidenceJSON),
		Completion:     result.Completion,
	}, nil
}

// fillRecord decodes a stored record's profile and renders it through a
// mapping document.
func fillRecord(rec *store.Record, mappingSpec string) (map[string]string, error) {
	var p profile.ClientProfile
	if err := json.Unmarshal([]byte(rec.ProfileJSON), &p); err != nil {
		return nil, fmt.Errorf("decoding stored profile: %w", err)
	}
	set, err := formfill.ParseMappingSet(mappingSpec)
	if err != nil {
		return nil, err
	}
	return formfill.Fill(&p, set), nil
}
