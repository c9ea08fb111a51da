package models

// Verdict is the structured result of a single media analysis as returned by
// the detector service.
type Verdict struct {
	IsSynthetic       bool              `json:"is_synthetic"`
	ConfidenceScore   float64           `json:"confidence_score"`
	VerdictSummary    string            `json:"verdict_summary"`
	ReasoningPoints   []string          `json:"reasoning_points,omitempty"`
	ArtifactsFound    []string          `json:"artifacts_found,omitempty"`
	TechnicalFindings TechnicalFindings `json:"technical_findings"`
}

// TechnicalFindings groups per-aspect observations. LightingConsistency and
// TextureQuality are always populated by the service; the remaining aspects
// appear only when applicable to the analyzed media.
type TechnicalFindings struct {
	LightingConsistency string `json:"lighting_consistency"`
	TextureQuality      string `json:"texture_quality"`
	AnatomicalAccuracy  string `json:"anatomical_accuracy,omitempty"`
	MetadataAnalysis    string `json:"metadata_analysis,omitempty"`
	TemporalConsistency string `json:"temporal_consistency,omitempty"`
}

// Label returns the short human-readable classification for the verdict.
func (v *Verdict) Label() string {
	if v.IsSynthetic {
		return "AI-generated"
	}
	return "Authentic"
}

// Clone returns a deep copy of the verdict.
func (v *Verdict) Clone() *Verdict {
	if v == nil {
		return nil
	}
	c := *v
	c.ReasoningPoints = append([]string(nil), v.ReasoningPoints...)
	c.ArtifactsFound = append([]string(nil), v.ArtifactsFound...)
	return &c
}
