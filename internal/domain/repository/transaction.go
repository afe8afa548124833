package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so that the enrichment pipeline's address upsert, restaurant
// upsert and receipt attach share one atomic unit.
type RepositoryFactory interface {
	// NewReceiptRepository returns a ReceiptRepository bound to the current transaction.
	NewReceiptRepository() ReceiptRepository

	// NewAddressRepository returns an AddressRepository bound to the current transaction.
	NewAddressRepository() AddressRepository

	// NewRestaurantRepository returns a RestaurantRepository bound to the current transaction.
	NewRestaurantRepository() RestaurantRepository
}
