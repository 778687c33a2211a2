/*package thread contains functions useful for multi-threading.*/
package thread

import (
	"runtime"

	derror "github.com/driftlab/drift/lib/error"
)

// Set sets the number of threads drift will run with. Passing a
// non-positive value uses every core on the node.
func Set(n int) {
	if n <= 0 {
		runtime.GOMAXPROCS(runtime.NumCPU())
		return
	}

	if n > runtime.NumCPU() {
		derror.External("%d threads requested, but your system only has "+
			"%d cores per node. If you want drift to use the maximum number "+
			"of threads per node, set threads = -1.", n, runtime.NumCPU())
	}

	runtime.GOMAXPROCS(n)
}
