package http

import (
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/domain/menu"
	"mealplan/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	programRepo catering.ProgramRepository
	mealRepo    catering.MealItemRepository
	menuRepo    menu.Repository
	invoiceRepo invoice.Repository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		programRepo: repository.NewProgramRepository(c.db, c.log),
		mealRepo:    repository.NewMealItemRepository(c.db, c.log),
		menuRepo:    repository.NewMenuRepository(c.db, c.log),
		invoiceRepo: repository.NewInvoiceRepository(c.db, c.log),
	}
}
