package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo     UserRepositoryFacade
	DealRepo     DealRepositoryFacade
	ActivityRepo ActivityRepositoryFacade
	MemoRepo     MemoRepositoryFacade
	RevokedRepo  RevokedTokenRepository // nil when no deny list is configured
}
