package observatory

// resetForTest undoes Init, so each test gets a clean owning goroutine.
// No test in this package calls t.Parallel, so tests run one at a time,
// each on its own goroutine; re-Init'ing at the start of each test pins
// ownership to that test's goroutine.
func resetForTest() {
	rt.initialized.Store(false)
	rt.ownerGID.Store(0)
	rt.stack = captureStack{}
}
