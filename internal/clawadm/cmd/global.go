package cmd

import (
	"github.com/spf13/pflag"
)

var (
	globalMetadataAddr string
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&globalMetadataAddr,
		"metadata-addr",
		"",
		"Override the instance metadata service address (default http://100.96.0.96)")
}

// GetMetadataAddr returns the metadata address override, "" meaning the
// link-local default.
func GetMetadataAddr() string {
	return globalMetadataAddr
}
