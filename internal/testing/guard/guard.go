// Package guard flips the runtime into test mode so that importing test
// binaries never start real servers or connect to live backends.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("WAREBASE_TEST_MODE") == "" {
			_ = os.Setenv("WAREBASE_TEST_MODE", "1")
		}
	})
}
