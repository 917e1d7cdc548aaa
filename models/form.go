package models

// EntryForm is the raw input to the draft builder: what the entry form (or
// the CLI flags standing in for it) collected from the user. All dates are
// "2006-01-02", times "15:04". Empty fields fall back per the draft rules.
type EntryForm struct {
	Date      string
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Title     string
	Content   string
}
