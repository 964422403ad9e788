// Package all imports all built-in concord extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/concord/extension/core"
	_ "github.com/jpl-au/concord/extension/corpus"
	_ "github.com/jpl-au/concord/extension/search"
	_ "github.com/jpl-au/concord/extension/subject"
)
