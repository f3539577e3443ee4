package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root so that relative paths (logs/, sqlite files)
	// resolve the same way in every package's tests.
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/weather-alert-pipeline/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}
