package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	invoicerepository "github.com/khatahq/khata/internal/invoice/repository"
	"github.com/khatahq/khata/internal/payment/domain"
	"github.com/khatahq/khata/internal/payment/repository"
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
		&domain.Payment{},
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
		InvoiceNumber: "INV-PAY00001",
		InvoiceDate:   time.Now(),
		DueDate:       time.Now().AddDate(0, 0, 14),
		Total:         decimal.NewFromInt(1180),
		Status:        invoicedomain.InvoiceStatusSent,
	}
	require.NoError(t, dbConn.Create(&invoice).Error)

	svc := New(Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		InvoiceRepo: invoicerepository.Provide(),
	})

	return &testEnv{svc: svc, db: dbConn, ctx: ctx, invoice: invoice}
}

func TestCreatePayment(t *testing.T) {
	env := newTestEnv(t)

	payment, err := env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:     env.invoice.ID.String(),
		Amount:        "500.00",
		PaymentDate:   "2026-08-20",
		PaymentMethod: "upi",
		Note:          "first installment",
	})
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "upi", payment.PaymentMethod)
	require.NotNil(t, payment.Invoice)
	assert.Equal(t, env.invoice.InvoiceNumber, payment.Invoice.InvoiceNumber)
}

func TestCreatePaymentValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:   "999999",
		Amount:      "100",
		PaymentDate: "2026-08-20",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)

	_, err = env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:   env.invoice.ID.String(),
		Amount:      "0",
		PaymentDate: "2026-08-20",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:   env.invoice.ID.String(),
		Amount:      "100",
		PaymentDate: "20/08/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestUpdatePaymentPartial(t *testing.T) {
	env := newTestEnv(t)

	payment, err := env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:   env.invoice.ID.String(),
		Amount:      "500",
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)

	amount := "750.50"
	updated, err := env.svc.Update(env.ctx, domain.UpdatePaymentRequest{
		ID:     payment.ID.String(),
		Amount: &amount,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromFloat(750.50)))
	assert.Equal(t, "2026-08-20", updated.PaymentDate.Format("2006-01-02"))
}

func TestPaymentsScopedToUser(t *testing.T) {
	env := newTestEnv(t)

	payment, err := env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:   env.invoice.ID.String(),
		Amount:      "500",
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	otherUser := tenantctx.WithUserID(context.Background(), node.Generate())

	_, err = env.svc.GetByID(otherUser, payment.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePayment(t *testing.T) {
	env := newTestEnv(t)

	payment, err := env.svc.Create(env.ctx, domain.CreatePaymentRequest{
		InvoiceID:   env.invoice.ID.String(),
		Amount:      "500",
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(env.ctx, payment.ID.String()))

	_, err = env.svc.GetByID(env.ctx, payment.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
