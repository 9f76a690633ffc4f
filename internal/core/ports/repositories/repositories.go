package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	RideRepo    RideRepositoryFacade
	ExpenseRepo ExpenseRepositoryFacade
	BalanceRepo BalanceRepositoryFacade
	ExportRepo  ExportRepositoryFacade
	Cache       SettlementCache
}
