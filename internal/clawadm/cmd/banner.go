package cmd

import (
	"fmt"

	"github.com/openclaw/clawadm/pkg/version"
)

const bannerText = `
   ____ _                 _       _
  / ___| | __ ___      __/ \   __| |_ __ ___
 | |   | |/ _` + "`" + ` \ \ /\ / / _ \ / _` + "`" + ` | '_ ` + "`" + ` _ \
 | |___| | (_| |\ V  V / ___ \ (_| | | | | | |
  \____|_|\__,_| \_/\_/_/   \_\__,_|_| |_| |_|

        OpenClaw Gateway Provisioner
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
