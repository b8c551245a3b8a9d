package models

type DocketPDFData struct {
	Company       *Company // letterhead company
	Branch        *Branch
	Invoice       *Invoice
	Date          string // formatted creation date
	Total         float64
	TotalWords    string
	CopyTitle     string
	VehicleNumber string // fleet number or vendor snapshot number
}
