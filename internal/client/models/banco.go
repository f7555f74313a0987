package models

// BancoHoras is the hour bank derived from the user and all day records.
// It is never persisted.
type BancoHoras struct {
	InitialBalance float64 `json:"initial_balance"`
	TotalWorked    float64 `json:"total_worked"`
	TotalExpected  float64 `json:"total_expected"`
	CurrentBalance float64 `json:"current_balance"`
}
