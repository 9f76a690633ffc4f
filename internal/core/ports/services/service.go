package services

import "github.com/SscSPs/car_expense_app/internal/core/domain"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Ride         RideSvcFacade
	Expense      ExpenseSvcFacade
	Balance      BalanceSvcFacade
	Export       ExportSvcFacade
	Participants domain.ParticipantSet
}
