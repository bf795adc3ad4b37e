package logging

// Export unexported values for testing
func CurrentOutputForTest() any {
	return currentOutput
}
