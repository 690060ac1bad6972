package submit_summary

// SubmitSummaryRequest HTTP request model
type SubmitSummaryRequest struct {
	Summary string `json:"summary" validate:"required"`
}
