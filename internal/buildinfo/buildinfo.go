package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// UserAgent is sent with every outbound request.
func UserAgent() string {
	return fmt.Sprintf("mangadesk/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)
}
