package repository

import (
	"context"
	"testing"

	"github.com/andersvik/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepo_CRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(database)
	ctx := context.Background()

	customer := testutil.NewTestCustomer("Globex")
	require.NoError(t, repo.Create(ctx, customer))

	got, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.Name)
	assert.Nil(t, got.ArchivedAt)

	got.Name = "Globex Corp"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex Corp", got.Name)

	require.NoError(t, repo.Archive(ctx, customer.ID))
	got, err = repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ArchivedAt)

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	_, err = repo.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepo_DeleteCascadesToHierarchy(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(database)
	contracts := NewSQLiteContractRepo(database)
	projects := NewSQLiteProjectRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	customer := testutil.NewTestCustomer("Initech")
	require.NoError(t, customers.Create(ctx, customer))
	contract := testutil.NewTestContract(customer.ID, "Retainer")
	require.NoError(t, contracts.Create(ctx, contract))
	project := testutil.NewTestProject(customer.ID, "Migration", testutil.WithContract(contract.ID))
	require.NoError(t, projects.Create(ctx, project))
	task := testutil.NewTestTask(project.ID, "Planning")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, customers.Delete(ctx, customer.ID))

	_, err := contracts.GetByID(ctx, contract.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = projects.GetByID(ctx, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ContractClearedOnContractDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(database)
	contracts := NewSQLiteContractRepo(database)
	projects := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	customer := testutil.NewTestCustomer("Initech")
	require.NoError(t, customers.Create(ctx, customer))
	contract := testutil.NewTestContract(customer.ID, "Retainer")
	require.NoError(t, contracts.Create(ctx, contract))
	project := testutil.NewTestProject(customer.ID, "Migration", testutil.WithContract(contract.ID))
	require.NoError(t, projects.Create(ctx, project))

	require.NoError(t, contracts.Delete(ctx, contract.ID))

	got, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.False(t, got.HasContract(), "deleting a contract should detach it from projects, not delete them")
}
