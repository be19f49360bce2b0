package service

import (
	"context"
	"testing"

	"github.com/andersvik/timetrack/internal/repository"
	"github.com/andersvik/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_RejectsContractOfOtherCustomer(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	customers := repository.NewSQLiteCustomerRepo(database)
	contracts := repository.NewSQLiteContractRepo(database)
	svc := NewProjectService(repository.NewSQLiteProjectRepo(database), contracts)

	acme := testutil.NewTestCustomer("Acme")
	rival := testutil.NewTestCustomer("Rival")
	require.NoError(t, customers.Create(ctx, acme))
	require.NoError(t, customers.Create(ctx, rival))

	contract := testutil.NewTestContract(rival.ID, "Retainer")
	require.NoError(t, contracts.Create(ctx, contract))

	project := testutil.NewTestProject(acme.ID, "Website", testutil.WithContract(contract.ID))
	err := svc.Create(ctx, project)
	assert.ErrorContains(t, err, "different customer")
}

func TestProjectService_CreateWithOwnContract(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	customers := repository.NewSQLiteCustomerRepo(database)
	contracts := repository.NewSQLiteContractRepo(database)
	svc := NewProjectService(repository.NewSQLiteProjectRepo(database), contracts)

	acme := testutil.NewTestCustomer("Acme")
	require.NoError(t, customers.Create(ctx, acme))
	contract := testutil.NewTestContract(acme.ID, "Retainer")
	require.NoError(t, contracts.Create(ctx, contract))

	project := testutil.NewTestProject(acme.ID, "Website", testutil.WithContract(contract.ID))
	require.NoError(t, svc.Create(ctx, project))

	got, err := svc.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ContractID)
	assert.Equal(t, contract.ID, *got.ContractID)
}

func TestTaskService_RequiresExistingProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := NewTaskService(repository.NewSQLiteTaskRepo(database), repository.NewSQLiteProjectRepo(database))

	task := testutil.NewTestTask("no-such-project", "Work")
	err := svc.Create(ctx, task)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
