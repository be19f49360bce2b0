package report

import (
	"testing"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	customer *domain.Customer
	contract *domain.Contract
	project  *domain.Project
	tasks    []*domain.Task
	idx      Indices
}

func newFixture() *fixture {
	customer := testutil.NewTestCustomer("Acme")
	contract := testutil.NewTestContract(customer.ID, "Retainer", testutil.WithDailyRate(800, "EUR"))
	project := testutil.NewTestProject(customer.ID, "Website", testutil.WithContract(contract.ID))
	t1 := testutil.NewTestTask(project.ID, "Development")
	t2 := testutil.NewTestTask(project.ID, "Review")

	f := &fixture{
		customer: customer,
		contract: contract,
		project:  project,
		tasks:    []*domain.Task{t1, t2},
	}
	f.idx = Indices{
		Tasks:     map[string]*domain.Task{t1.ID: t1, t2.ID: t2},
		Projects:  map[string]*domain.Project{project.ID: project},
		Contracts: map[string]*domain.Contract{contract.ID: contract},
		Customers: map[string]*domain.Customer{customer.ID: customer},
	}
	return f
}

func entryFor(taskID string, hours float64, startedAt time.Time) *domain.TimeEntry {
	return testutil.NewTestEntry("u1", taskID,
		testutil.WithTotalHours(hours),
		testutil.WithEntryStartedAt(startedAt),
	)
}

func march() Period { return MonthPeriod(2026, time.March) }

func TestAggregate_InvoiceSumsAndCost(t *testing.T) {
	f := newFixture()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{
		entryFor(f.tasks[0].ID, 2, day),
		entryFor(f.tasks[0].ID, 1, day.Add(4*time.Hour)),
		entryFor(f.tasks[1].ID, 3, day.AddDate(0, 0, 1)),
	}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportInvoice)
	require.NoError(t, err)

	assert.Equal(t, "Acme", summary.CustomerName)
	assert.Equal(t, 31, summary.TotalDays)
	assert.Equal(t, 6.0, summary.TotalHours)

	require.Len(t, summary.Contracts, 1)
	contract := summary.Contracts[0]
	assert.Equal(t, f.contract.ID, contract.ContractID)
	assert.Equal(t, 800.0, contract.DailyRate)
	assert.Equal(t, "EUR", contract.Currency)
	assert.Equal(t, 6.0, contract.TotalHours)
	require.NotNil(t, contract.TotalCost)
	assert.InDelta(t, 600.0, *contract.TotalCost, 1e-9, "6h at 800/day over 8h days")

	require.Len(t, contract.Projects, 1)
	project := contract.Projects[0]
	assert.Equal(t, 6.0, project.TotalHours)
	require.Len(t, project.Tasks, 2)
	assert.Equal(t, 3.0, project.Tasks[0].TotalHours)
	assert.Equal(t, 3.0, project.Tasks[1].TotalHours)

	require.NotNil(t, summary.TotalCost)
	assert.InDelta(t, 600.0, *summary.TotalCost, 1e-9)
}

func TestAggregate_TimesheetNeverPopulatesCost(t *testing.T) {
	f := newFixture()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{entryFor(f.tasks[0].ID, 4, day)}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportTimesheet)
	require.NoError(t, err)

	assert.Nil(t, summary.TotalCost)
	for _, c := range summary.Contracts {
		assert.Nil(t, c.TotalCost)
	}
	assert.Equal(t, 4.0, summary.TotalHours)
}

func TestAggregate_NoContractBucket(t *testing.T) {
	f := newFixture()
	bare := testutil.NewTestProject(f.customer.ID, "Internal")
	task := testutil.NewTestTask(bare.ID, "Maintenance")
	f.idx.Projects[bare.ID] = bare
	f.idx.Tasks[task.ID] = task

	day := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{
		entryFor(f.tasks[0].ID, 2, day),
		entryFor(task.ID, 5, day),
	}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportInvoice)
	require.NoError(t, err)
	require.Len(t, summary.Contracts, 2)

	var synthetic *domain.ContractTimeData
	for i := range summary.Contracts {
		if summary.Contracts[i].ContractID == "" {
			synthetic = &summary.Contracts[i]
		}
	}
	require.NotNil(t, synthetic, "projects without a contract get a synthetic bucket")
	assert.Equal(t, "No contract", synthetic.ContractName)
	assert.Equal(t, 5.0, synthetic.TotalHours)
	require.NotNil(t, synthetic.TotalCost)
	assert.Equal(t, 0.0, *synthetic.TotalCost, "no rate, no cost")

	require.NotNil(t, summary.TotalCost)
	assert.InDelta(t, 200.0, *summary.TotalCost, 1e-9, "only the contracted hours bill")
}

func TestAggregate_OrphanedReferencesDropped(t *testing.T) {
	f := newFixture()
	day := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	ghostTask := testutil.NewTestTask("deleted-project", "Ghost")
	f.idx.Tasks[ghostTask.ID] = ghostTask

	entries := []*domain.TimeEntry{
		entryFor(f.tasks[0].ID, 2, day),
		entryFor("deleted-task", 8, day),  // task no longer resolves
		entryFor(ghostTask.ID, 8, day),    // project no longer resolves
	}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportInvoice)
	require.NoError(t, err, "orphans degrade the output, never fail the call")
	assert.Equal(t, 2.0, summary.TotalHours)
}

func TestAggregate_DanglingContractReferenceDropped(t *testing.T) {
	f := newFixture()
	broken := testutil.NewTestProject(f.customer.ID, "Broken", testutil.WithContract("deleted-contract"))
	task := testutil.NewTestTask(broken.ID, "Work")
	f.idx.Projects[broken.ID] = broken
	f.idx.Tasks[task.ID] = task

	day := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{entryFor(task.ID, 3, day)}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportInvoice)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalHours)
	assert.Empty(t, summary.Contracts)
}

func TestAggregate_FiltersWindowAndCustomer(t *testing.T) {
	f := newFixture()
	other := testutil.NewTestCustomer("Rival")
	otherProject := testutil.NewTestProject(other.ID, "Secret")
	otherTask := testutil.NewTestTask(otherProject.ID, "Stuff")
	f.idx.Customers[other.ID] = other
	f.idx.Projects[otherProject.ID] = otherProject
	f.idx.Tasks[otherTask.ID] = otherTask

	entries := []*domain.TimeEntry{
		entryFor(f.tasks[0].ID, 2, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		entryFor(f.tasks[0].ID, 4, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)), // before window
		entryFor(f.tasks[0].ID, 4, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),  // after window
		entryFor(otherTask.ID, 9, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),  // other customer
	}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportTimesheet)
	require.NoError(t, err)
	assert.Equal(t, 2.0, summary.TotalHours)
}

func TestAggregate_InvalidRangeRejected(t *testing.T) {
	f := newFixture()
	period := Period{
		Start: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := Aggregate(nil, f.idx, f.customer.ID, period, domain.ReportInvoice)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAggregate_NoDataYieldsZeroTotals(t *testing.T) {
	f := newFixture()

	invoice, err := Aggregate(nil, f.idx, f.customer.ID, march(), domain.ReportInvoice)
	require.NoError(t, err)
	assert.Zero(t, invoice.TotalHours)
	require.NotNil(t, invoice.TotalCost)
	assert.Zero(t, *invoice.TotalCost)
	assert.Empty(t, invoice.Contracts)

	timesheet, err := Aggregate(nil, f.idx, f.customer.ID, march(), domain.ReportTimesheet)
	require.NoError(t, err)
	assert.Zero(t, timesheet.TotalHours)
	assert.Nil(t, timesheet.TotalCost)
}

func TestAggregate_GroupingPreservesFirstEncounterOrder(t *testing.T) {
	f := newFixture()
	day := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{
		entryFor(f.tasks[1].ID, 1, day),
		entryFor(f.tasks[0].ID, 1, day),
		entryFor(f.tasks[1].ID, 1, day),
	}

	summary, err := Aggregate(entries, f.idx, f.customer.ID, march(), domain.ReportTimesheet)
	require.NoError(t, err)
	require.Len(t, summary.Contracts, 1)
	tasks := summary.Contracts[0].Projects[0].Tasks
	require.Len(t, tasks, 2)
	assert.Equal(t, f.tasks[1].ID, tasks[0].TaskID, "first encountered task comes first")
	assert.Equal(t, 2.0, tasks[0].TotalHours)
}
