// Package report folds flat time entries into the per-customer summary tree
// (contract → project → task) consumed by the CLI and the export pipeline.
// Everything in here is pure: no I/O, no clocks, no mutation of inputs.
package report

import (
	"github.com/andersvik/timetrack/internal/domain"
)

// Indices is a read-only snapshot of the domain record graph, keyed by ID.
// The surrounding CRUD layer supplies it; the aggregator never queries.
type Indices struct {
	Tasks     map[string]*domain.Task
	Projects  map[string]*domain.Project
	Contracts map[string]*domain.Contract
	Customers map[string]*domain.Customer
}

// Aggregate builds the ReportSummary for one customer and period.
//
// Entries outside the period or belonging to other customers are filtered
// out. Entries whose task, project, or referenced contract no longer resolves
// are silently dropped: a partial report beats no report. Grouping preserves
// first-encounter order; presentation layers sort independently.
func Aggregate(
	entries []*domain.TimeEntry,
	idx Indices,
	customerID string,
	period Period,
	reportType domain.ReportType,
) (*domain.ReportSummary, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	summary := &domain.ReportSummary{
		CustomerID: customerID,
		ReportType: reportType,
		StartDate:  period.Start,
		EndDate:    period.End,
		TotalDays:  period.TotalDays(),
	}
	if customer, ok := idx.Customers[customerID]; ok {
		summary.CustomerName = customer.Name
	}

	buckets := newContractBuckets()
	for _, e := range entries {
		if !period.Contains(e.StartedAt) {
			continue
		}
		task, ok := idx.Tasks[e.TaskID]
		if !ok {
			continue
		}
		project, ok := idx.Projects[task.ProjectID]
		if !ok || project.CustomerID != customerID {
			continue
		}

		var contract *domain.Contract
		if project.HasContract() {
			contract, ok = idx.Contracts[*project.ContractID]
			if !ok {
				// Dangling contract reference: drop like any other orphan.
				continue
			}
		}

		buckets.add(contract, project, task, e.TotalHours)
	}

	summary.Contracts = buckets.build(reportType)
	for _, c := range summary.Contracts {
		summary.TotalHours += c.TotalHours
	}
	if reportType == domain.ReportInvoice {
		total := 0.0
		for _, c := range summary.Contracts {
			total += domain.Float64FromPtrWithDefault(0, c.TotalCost)
		}
		summary.TotalCost = &total
	}
	return summary, nil
}

// contractBuckets accumulates hours level by level while remembering the
// order in which each key was first seen.
type contractBuckets struct {
	order []string
	byID  map[string]*contractBucket
}

type contractBucket struct {
	contract *domain.Contract // nil for the synthetic "no contract" bucket
	order    []string
	byID     map[string]*projectBucket
}

type projectBucket struct {
	project *domain.Project
	order   []string
	byID    map[string]*taskBucket
}

type taskBucket struct {
	task  *domain.Task
	hours float64
}

func newContractBuckets() *contractBuckets {
	return &contractBuckets{byID: make(map[string]*contractBucket)}
}

func (b *contractBuckets) add(contract *domain.Contract, project *domain.Project, task *domain.Task, hours float64) {
	key := ""
	if contract != nil {
		key = contract.ID
	}
	cb, ok := b.byID[key]
	if !ok {
		cb = &contractBucket{contract: contract, byID: make(map[string]*projectBucket)}
		b.byID[key] = cb
		b.order = append(b.order, key)
	}

	pb, ok := cb.byID[project.ID]
	if !ok {
		pb = &projectBucket{project: project, byID: make(map[string]*taskBucket)}
		cb.byID[project.ID] = pb
		cb.order = append(cb.order, project.ID)
	}

	tb, ok := pb.byID[task.ID]
	if !ok {
		tb = &taskBucket{task: task}
		pb.byID[task.ID] = tb
		pb.order = append(pb.order, task.ID)
	}
	tb.hours += hours
}

func (b *contractBuckets) build(reportType domain.ReportType) []domain.ContractTimeData {
	var contracts []domain.ContractTimeData
	for _, key := range b.order {
		cb := b.byID[key]

		data := domain.ContractTimeData{ContractName: "No contract"}
		if cb.contract != nil {
			data.ContractID = cb.contract.ID
			data.ContractName = cb.contract.Name
			data.DailyRate = cb.contract.DailyRate
			data.Currency = cb.contract.Currency
		}

		for _, pid := range cb.order {
			pb := cb.byID[pid]
			projectData := domain.ProjectTimeData{
				ProjectID:   pb.project.ID,
				ProjectName: pb.project.Name,
			}
			for _, tid := range pb.order {
				tb := pb.byID[tid]
				projectData.Tasks = append(projectData.Tasks, domain.TaskTimeData{
					TaskID:     tb.task.ID,
					TaskName:   tb.task.Name,
					TotalHours: tb.hours,
				})
				projectData.TotalHours += tb.hours
			}
			data.Projects = append(data.Projects, projectData)
			data.TotalHours += projectData.TotalHours
		}

		// Cost is a contract-level concept: hours times the hourly rate
		// derived from the eight-hour-day convention. Task and project nodes
		// carry no cost of their own.
		if reportType == domain.ReportInvoice {
			cost := data.TotalHours * data.DailyRate / domain.HoursPerBillableDay
			data.TotalCost = &cost
		}

		contracts = append(contracts, data)
	}
	return contracts
}
