// Package scaffold generates starter catalog manifests from embedded
// templates. It powers the "extpack catalog scaffold" command, producing
// a schema-valid manifest skeleton that catalog authors fill in and
// publish.
package scaffold

import "embed"

//go:embed templates
var templateFS embed.FS
