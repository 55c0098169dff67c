package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplan/internal/shared/errors"
)

func TestListProgramInvoicesUseCase(t *testing.T) {
	l := newLedger()
	gen := newGenerateForMenu(l, aprilMenu(t, true))
	_, err := gen.Execute(context.Background(), GenerateInvoicesForMenuCommand{TenantID: testTenant, MenuID: "mnu_apr", Grouping: "week"})
	require.NoError(t, err)

	uc := NewListProgramInvoicesUseCase(programRepoFor(testProgram()), l, nopLogger())

	page, err := uc.Execute(context.Background(), ListProgramInvoicesQuery{TenantID: testTenant, ProgramID: "prg_bright", Offset: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Invoices, 2)
	assert.Equal(t, "BC-0004", page.Invoices[0].Number)

	past, err := uc.Execute(context.Background(), ListProgramInvoicesQuery{TenantID: testTenant, ProgramID: "prg_bright", Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.NotNil(t, past.Invoices)
	assert.Empty(t, past.Invoices)

	_, err = uc.Execute(context.Background(), ListProgramInvoicesQuery{TenantID: testTenant, ProgramID: "prg_x", Limit: 2})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), ListProgramInvoicesQuery{TenantID: testTenant, ProgramID: "prg_bright"})
	assert.True(t, errors.IsValidationError(err))
}

func TestGetInvoiceUseCase(t *testing.T) {
	l := newLedger()
	gen, _ := newGenerateInvoice(l, aprilMenu(t, true))
	created, err := gen.Execute(context.Background(), invoiceCmd(1, 5))
	require.NoError(t, err)

	uc := NewGetInvoiceUseCase(l, nopLogger())

	got, err := uc.Execute(context.Background(), GetInvoiceQuery{TenantID: testTenant, InvoiceID: created.Invoice.ID})
	require.NoError(t, err)
	assert.Equal(t, "BC-0001", got.Number)

	_, err = uc.Execute(context.Background(), GetInvoiceQuery{TenantID: "tenant-2", InvoiceID: created.Invoice.ID})
	assert.True(t, errors.IsNotFoundError(err))
}
