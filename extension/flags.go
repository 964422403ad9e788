// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "case-sensitive" -> FlagCaseSensitive).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll           = "all"            // Whole chapter / all items
	FlagCaseSensitive = "case-sensitive" // Match letter case exactly
	FlagCheckpoint    = "checkpoint"     // Flush the WAL only
	FlagClip          = "clip"           // Compact listing to stdout
	FlagCompress      = "compress"       // Abbreviate common words
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagExpand        = "expand"         // Add synonym and affix variants
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagNoColour      = "no-colour"      // Plain diff markers
	FlagShare         = "share"          // Mark as shared (committed)
	FlagUnique        = "unique"         // One row per verse

	// String flags

	FlagAbbrev      = "abbrev"      // Translation abbreviation override
	FlagExport      = "export"      // Export results to a file
	FlagFormat      = "format"      // Export format (text, json, md)
	FlagName        = "name"        // Translation name override
	FlagOlderThan   = "older-than"  // Retention cutoff (7d, 4w, 3m)
	FlagSince       = "since"       // Only entries newer than this
	FlagTranslation = "translation" // Translation filter (repeatable)

	// Integer flags

	FlagCount = "count" // Verses in a reading window
	FlagLimit = "limit" // Limit number of results
)
