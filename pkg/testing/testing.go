package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests run from the project root so relative paths (logs/, *.db) land in
	// one place no matter which package is under test
	//
	//   import (
	//     _ "joystick.io/fleet-control/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	if _, found := os.LookupEnv("LOG_DIR"); !found {
		_ = os.Setenv("LOG_DIR", path.Join(os.TempDir(), "joystick-test-logs"))
	}
}
