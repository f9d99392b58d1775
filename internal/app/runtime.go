package app

import (
	"os"
	"strconv"
	"sync"
)

// TestModeEnv names the variable the testing helper package sets.
const TestModeEnv = "SUPPLYDESK_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	on, _ := strconv.ParseBool(os.Getenv(TestModeEnv))
	return on
})

// InTestMode reports whether binaries should return before touching
// PostgreSQL, Redis or the network. The variable is read once per process.
func InTestMode() bool {
	return testMode()
}
