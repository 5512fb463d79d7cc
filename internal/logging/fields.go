package logging

// Field names for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldPaths  = "paths"
	FieldConfig = "config"

	// Parsing and printing.
	FieldFlavor    = "flavor"
	FieldParser    = "parser"
	FieldStage     = "stage"
	FieldEdits     = "edits"
	FieldReused    = "reused"
	FieldReprinted = "reprinted"
	FieldPatched   = "patched"
	FieldBytes     = "bytes"

	// Harness statistics.
	FieldJobs            = "jobs"
	FieldCases           = "cases"
	FieldPassed          = "passed"
	FieldFailed          = "failed"
	FieldSkipped         = "skipped"
	FieldParseFailures   = "parse_failures"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesModified   = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
