package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	invoicerepository "github.com/khatahq/khata/internal/invoice/repository"
	"github.com/khatahq/khata/internal/invoiceitem/domain"
	"github.com/khatahq/khata/internal/invoiceitem/repository"
	"github.com/khatahq/khata/pkg/db"
	"github.com/khatahq/khata/pkg/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc     domain.Service
	db      *gorm.DB
	node    *snowflake.Node
	ctx     context.Context
	invoice invoicedomain.Invoice
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&domain.InvoiceItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	userID := node.Generate()
	ctx := tenantctx.WithUserID(context.Background(), userID)

	client := clientdomain.Client{ID: node.Generate(), Name: "Acme"}
	require.NoError(t, dbConn.Create(&client).Error)

	invoice := invoicedomain.Invoice{
		ID:            node.Generate(),
		UserID:        userID,
		ClientID:      client.ID,
		InvoiceNumber: "INV-TEST0001",
		InvoiceDate:   time.Now(),
		DueDate:       time.Now().AddDate(0, 0, 14),
		Total:         decimal.NewFromInt(0),
		Status:        invoicedomain.InvoiceStatusDraft,
	}
	require.NoError(t, dbConn.Create(&invoice).Error)

	svc := New(Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		InvoiceRepo: invoicerepository.Provide(),
	})

	return &testEnv{svc: svc, db: dbConn, node: node, ctx: ctx, invoice: invoice}
}

func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }

func TestCreateItemComputesDerivedFields(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:     env.invoice.ID.String(),
		Description:   "Consulting",
		Quantity:      ptrInt64(3),
		UnitPrice:     "100",
		TaxPercentage: ptrString("18"),
	})
	require.NoError(t, err)
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(300)), "subtotal %s", item.Subtotal)
	assert.True(t, item.TaxAmount.Equal(decimal.NewFromInt(54)), "tax %s", item.TaxAmount)
	assert.True(t, item.TotalWithTax.Equal(decimal.NewFromInt(354)), "total %s", item.TotalWithTax)
}

func TestCreateItemDefaultsTaxToZero(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   env.invoice.ID.String(),
		Description: "Untaxed",
		Quantity:    ptrInt64(2),
		UnitPrice:   "49.50",
	})
	require.NoError(t, err)
	assert.True(t, item.TaxAmount.IsZero())
	assert.True(t, item.TotalWithTax.Equal(item.Subtotal))
}

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   env.invoice.ID.String(),
		Description: "",
		Quantity:    ptrInt64(1),
		UnitPrice:   "10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)

	_, err = env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   env.invoice.ID.String(),
		Description: "Bad qty",
		Quantity:    ptrInt64(0),
		UnitPrice:   "10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   env.invoice.ID.String(),
		Description: "Bad price",
		Quantity:    ptrInt64(1),
		UnitPrice:   "-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitPrice)

	_, err = env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:     env.invoice.ID.String(),
		Description:   "Bad tax",
		Quantity:      ptrInt64(1),
		UnitPrice:     "10",
		TaxPercentage: ptrString("101"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxPercentage)

	_, err = env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   "999999",
		Description: "Orphan",
		Quantity:    ptrInt64(1),
		UnitPrice:   "10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func TestUpdateItemMergesBeforeRecompute(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:     env.invoice.ID.String(),
		Description:   "Consulting",
		Quantity:      ptrInt64(4),
		UnitPrice:     "250",
		TaxPercentage: ptrString("0"),
	})
	require.NoError(t, err)

	// Only the tax rate changes; quantity and unit price must come from the
	// stored row, not zero values.
	updated, err := env.svc.Update(env.ctx, domain.UpdateItemRequest{
		ID:            item.ID.String(),
		TaxPercentage: ptrString("18"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Quantity)
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal %s", updated.Subtotal)
	assert.True(t, updated.TaxAmount.Equal(decimal.NewFromInt(180)), "tax %s", updated.TaxAmount)
	assert.True(t, updated.TotalWithTax.Equal(decimal.NewFromInt(1180)), "total %s", updated.TotalWithTax)
}

func TestUpdateItemKeepsAmountsStableForNonMonetaryChange(t *testing.T) {
	env := newTestEnv(t)

	// a price with more than two decimals is rounded once on create, so a
	// recompute from the stored row yields the same amounts
	item, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:     env.invoice.ID.String(),
		Description:   "Consulting",
		Quantity:      ptrInt64(10),
		UnitPrice:     "10.004",
		TaxPercentage: ptrString("18"),
	})
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")), "unit price %s", item.UnitPrice)
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal %s", item.Subtotal)

	updated, err := env.svc.Update(env.ctx, domain.UpdateItemRequest{
		ID:          item.ID.String(),
		Description: ptrString("Consulting, revised"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Subtotal.Equal(item.Subtotal), "subtotal drifted: create=%s update=%s", item.Subtotal, updated.Subtotal)
	assert.True(t, updated.TaxAmount.Equal(item.TaxAmount), "tax drifted: create=%s update=%s", item.TaxAmount, updated.TaxAmount)
	assert.True(t, updated.TotalWithTax.Equal(item.TotalWithTax), "total drifted: create=%s update=%s", item.TotalWithTax, updated.TotalWithTax)
}

func TestUpdateItemRejectsInvalidMergedState(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   env.invoice.ID.String(),
		Description: "Consulting",
		Quantity:    ptrInt64(1),
		UnitPrice:   "10",
	})
	require.NoError(t, err)

	_, err = env.svc.Update(env.ctx, domain.UpdateItemRequest{
		ID:       item.ID.String(),
		Quantity: ptrInt64(-2),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// the stored row is untouched after a rejected update
	stored, err := env.svc.GetByID(env.ctx, item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Quantity)
	assert.True(t, stored.Subtotal.Equal(decimal.NewFromInt(10)))
}

func TestListByInvoice(t *testing.T) {
	env := newTestEnv(t)

	for _, desc := range []string{"one", "two", "three"} {
		_, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
			InvoiceID:   env.invoice.ID.String(),
			Description: desc,
			Quantity:    ptrInt64(1),
			UnitPrice:   "5",
		})
		require.NoError(t, err)
	}

	items, err := env.svc.ListByInvoice(env.ctx, env.invoice.ID.String())
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestDeleteItem(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.svc.Create(env.ctx, domain.CreateItemRequest{
		InvoiceID:   env.invoice.ID.String(),
		Description: "Doomed",
		Quantity:    ptrInt64(1),
		UnitPrice:   "5",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(env.ctx, item.ID.String()))

	_, err = env.svc.GetByID(env.ctx, item.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
