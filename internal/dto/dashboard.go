package dto

// DashboardSummary aggregates headline counts for the portal landing page.
type DashboardSummary struct {
	Residents         int `json:"residents"`
	LettersThisMonth  int `json:"lettersThisMonth"`
	ReservedNumbers   int `json:"reservedNumbers"`
	ConfirmedNumbers  int `json:"confirmedNumbers"`
	IncompleteBundles int `json:"incompleteBundles"`
}
