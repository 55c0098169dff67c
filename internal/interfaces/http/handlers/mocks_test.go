package handlers

import (
	"context"

	compliancedto "mealplan/internal/application/compliance/dto"
	complianceUsecases "mealplan/internal/application/compliance/usecases"
	invoicedto "mealplan/internal/application/invoice/dto"
	invoiceUsecases "mealplan/internal/application/invoice/usecases"
	menuUsecases "mealplan/internal/application/menu/usecases"
	"mealplan/internal/shared/logger"
)

const testTenant = "tenant-1"

type mockEvaluateComplianceUC struct {
	result *compliancedto.ComplianceReportDTO
	err    error
	query  complianceUsecases.EvaluateComplianceQuery
}

func (m *mockEvaluateComplianceUC) Execute(ctx context.Context, query complianceUsecases.EvaluateComplianceQuery) (*compliancedto.ComplianceReportDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockGenerateMonthlyMenuUC struct {
	result *menuUsecases.GenerateMonthlyMenuResult
	err    error
	cmd    menuUsecases.GenerateMonthlyMenuCommand
}

func (m *mockGenerateMonthlyMenuUC) Execute(ctx context.Context, cmd menuUsecases.GenerateMonthlyMenuCommand) (*menuUsecases.GenerateMonthlyMenuResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGenerateTenantMenusUC struct {
	result *menuUsecases.GenerateTenantMenusResult
	err    error
}

func (m *mockGenerateTenantMenusUC) Execute(ctx context.Context, cmd menuUsecases.GenerateTenantMenusCommand) (*menuUsecases.GenerateTenantMenusResult, error) {
	return m.result, m.err
}

type mockRegenerateMenuDayUC struct {
	result *menuUsecases.RegenerateMenuDayResult
	err    error
	cmd    menuUsecases.RegenerateMenuDayCommand
}

func (m *mockRegenerateMenuDayUC) Execute(ctx context.Context, cmd menuUsecases.RegenerateMenuDayCommand) (*menuUsecases.RegenerateMenuDayResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockFinalizeMonthlyMenuUC struct {
	result *menuUsecases.FinalizeMonthlyMenuResult
	err    error
}

func (m *mockFinalizeMonthlyMenuUC) Execute(ctx context.Context, cmd menuUsecases.FinalizeMonthlyMenuCommand) (*menuUsecases.FinalizeMonthlyMenuResult, error) {
	return m.result, m.err
}

type mockWeeklyIngredientsUC struct {
	result *menuUsecases.WeeklyIngredientsResult
	err    error
}

func (m *mockWeeklyIngredientsUC) Execute(ctx context.Context, query menuUsecases.WeeklyIngredientsQuery) (*menuUsecases.WeeklyIngredientsResult, error) {
	return m.result, m.err
}

type mockGenerateInvoiceUC struct {
	result *invoiceUsecases.GenerateInvoiceResult
	err    error
	cmd    invoiceUsecases.GenerateInvoiceCommand
}

func (m *mockGenerateInvoiceUC) Execute(ctx context.Context, cmd invoiceUsecases.GenerateInvoiceCommand) (*invoiceUsecases.GenerateInvoiceResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGenerateInvoicesForMenuUC struct {
	result *invoiceUsecases.GenerateInvoicesForMenuResult
	err    error
	cmd    invoiceUsecases.GenerateInvoicesForMenuCommand
}

func (m *mockGenerateInvoicesForMenuUC) Execute(ctx context.Context, cmd invoiceUsecases.GenerateInvoicesForMenuCommand) (*invoiceUsecases.GenerateInvoicesForMenuResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListProgramInvoicesUC struct {
	result *invoiceUsecases.ListProgramInvoicesResult
	err    error
	query  invoiceUsecases.ListProgramInvoicesQuery
}

func (m *mockListProgramInvoicesUC) Execute(ctx context.Context, query invoiceUsecases.ListProgramInvoicesQuery) (*invoiceUsecases.ListProgramInvoicesResult, error) {
	m.query = query
	return m.result, m.err
}

type mockGetInvoiceUC struct {
	result *invoicedto.InvoiceDTO
	err    error
}

func (m *mockGetInvoiceUC) Execute(ctx context.Context, query invoiceUsecases.GetInvoiceQuery) (*invoicedto.InvoiceDTO, error) {
	return m.result, m.err
}

type mockInvoiceStatusUC struct {
	result *invoiceUsecases.InvoiceStatusResult
	err    error
	cmd    invoiceUsecases.InvoiceStatusCommand
}

func (m *mockInvoiceStatusUC) Execute(ctx context.Context, cmd invoiceUsecases.InvoiceStatusCommand) (*invoiceUsecases.InvoiceStatusResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

func nopLogger() logger.Interface {
	return logger.NewNopLogger()
}
