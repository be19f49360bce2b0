package domain

import "time"

type ReportType string

const (
	ReportInvoice   ReportType = "invoice"
	ReportTimesheet ReportType = "timesheet"
)

// ValidReportTypes is the canonical set of accepted report types.
var ValidReportTypes = map[ReportType]bool{
	ReportInvoice: true, ReportTimesheet: true,
}

// ReportSummary is the read-only aggregation result for one customer and date
// window. The tree is never mutated after construction; cost fields are nil
// for timesheet reports.
type ReportSummary struct {
	CustomerID   string
	CustomerName string
	ReportType   ReportType
	StartDate    time.Time
	EndDate      time.Time
	TotalDays    int
	TotalHours   float64
	TotalCost    *float64
	Contracts    []ContractTimeData
}

// ContractTimeData aggregates the projects billed under one contract. The
// synthetic "no contract" bucket has an empty ContractID and a zero rate.
type ContractTimeData struct {
	ContractID   string
	ContractName string
	DailyRate    float64
	Currency     string
	TotalHours   float64
	TotalCost    *float64
	Projects     []ProjectTimeData
}

type ProjectTimeData struct {
	ProjectID   string
	ProjectName string
	TotalHours  float64
	Tasks       []TaskTimeData
}

type TaskTimeData struct {
	TaskID     string
	TaskName   string
	TotalHours float64
}
