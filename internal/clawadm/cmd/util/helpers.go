package util

import (
	"fmt"
	"os"
)

// CheckErr prints err and exits non-zero. Only flag/usage mistakes reach
// here; provisioning failures are warnings inside the run and never
// surface as an error exit.
func CheckErr(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
