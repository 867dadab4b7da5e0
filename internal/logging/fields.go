// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Parse option fields.
	FieldFlavor     = "flavor"
	FieldCodeblocks = "codeblocks"
	FieldMultiline  = "multiline"
	FieldJobs       = "jobs"
	FieldFormat     = "format"

	// Parse event fields.
	FieldTokens     = "tokens"
	FieldComments   = "comments"
	FieldTag        = "tag"
	FieldPosition   = "position"
	FieldTransforms = "transforms"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldBlockTags       = "block_tags"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
