package dto

// ImportSkip describes a CSV row that was not imported
type ImportSkip struct {
	Row    int    `json:"row" example:"4"`
	Email  string `json:"email,omitempty" example:"ali@example.com"`
	Reason string `json:"reason" example:"student with this email already exists"`
}

// ImportResult summarizes a bulk student import
type ImportResult struct {
	Imported int          `json:"imported" example:"18"`
	Skipped  []ImportSkip `json:"skipped"`
}
