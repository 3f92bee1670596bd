package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Accounts
	UserRepository          UserRepository
	SearchHistoryRepository SearchHistoryRepository
	TokenIssuer             TokenIssuer
	PasswordHasher          PasswordHasher

	// Communication
	AccountNotifier AccountNotifier

	// Catalog
	CatalogProvider CatalogProvider

	// Infrastructure
	Logger         Logger
	HealthCheckers []HealthChecker
}
