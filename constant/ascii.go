package constant

import _ "embed"

// Banner printed above the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string
