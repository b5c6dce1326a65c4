package germwalk

import _ "embed"

// Version is the release version of germwalk.
//
//go:embed VERSION
var Version string
