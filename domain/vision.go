package domain

// VisionFindings is the structured result of an external vision-model call.
// The caller of the engine obtains it from the vision service and passes it
// in alongside the ContentItem; the engine never issues the call itself.
type VisionFindings struct {
	Classification   string   `json:"classification"`
	ConfidenceScore  float64  `json:"confidence_score"`
	ExtractedText    string   `json:"extracted_text"`
	VisualElements   []string `json:"visual_elements"`
	Reasoning        string   `json:"reasoning"`
	RiskFactors      []string `json:"risk_factors"`
	LanguageDetected string   `json:"language_detected"`
}
