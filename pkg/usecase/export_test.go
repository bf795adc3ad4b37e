package usecase

// Export unexported functions for testing
var (
	ReadEntryForTest = readEntry
	RunResultForTest = runResult
)
