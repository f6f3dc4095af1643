package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/khatahq/khata/internal/client/domain"
	"github.com/khatahq/khata/internal/client/repository"
	"github.com/khatahq/khata/pkg/db"
	"github.com/khatahq/khata/pkg/tenantctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateClient(t *testing.T) {
	svc := newTestService(t)

	client, err := svc.Create(context.Background(), domain.CreateClientRequest{
		Name:    "Acme Traders",
		Email:   "Billing@Acme.example",
		State:   "Karnataka",
		Address: "42 MG Road, Bengaluru",
		GSTIN:   "29ABCDE1234F1Z5",
	})
	require.NoError(t, err)
	assert.NotZero(t, client.ID)
	assert.Equal(t, "billing@acme.example", client.Email)
	assert.Equal(t, "Karnataka", client.State)
}

func TestCreateClientValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateClientRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), domain.CreateClientRequest{
		Name:  "Acme",
		Email: "not-an-email",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateClientDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateClientRequest{
		Name:  "Acme",
		Email: "billing@acme.example",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateClientRequest{
		Name:  "Acme Two",
		Email: "billing@acme.example",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateClientPartial(t *testing.T) {
	svc := newTestService(t)

	client, err := svc.Create(context.Background(), domain.CreateClientRequest{
		Name:  "Acme",
		State: "Karnataka",
	})
	require.NoError(t, err)

	state := "Maharashtra"
	updated, err := svc.Update(context.Background(), domain.UpdateClientRequest{
		ID:    client.ID.String(),
		State: &state,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maharashtra", updated.State)
	assert.Equal(t, "Acme", updated.Name)
}

func TestGetClientScopedByTenant(t *testing.T) {
	svc := newTestService(t)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	tenantA := tenantctx.WithTenantID(context.Background(), node.Generate())
	tenantB := tenantctx.WithTenantID(context.Background(), node.Generate())

	client, err := svc.Create(tenantA, domain.CreateClientRequest{Name: "Scoped"})
	require.NoError(t, err)

	_, err = svc.GetByID(tenantA, client.ID.String())
	require.NoError(t, err)

	_, err = svc.GetByID(tenantB, client.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteClient(t *testing.T) {
	svc := newTestService(t)

	client, err := svc.Create(context.Background(), domain.CreateClientRequest{Name: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), client.ID.String()))

	_, err = svc.GetByID(context.Background(), client.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
