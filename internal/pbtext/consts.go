package pbtext

const (
	// ============================================================================
	// Section Markers
	// ============================================================================

	// SectionBeginPrefix opens a table section, e.g. "/* Begin PBXGroup section */".
	SectionBeginPrefix = "/* Begin "

	// SectionEndPrefix closes a table section.
	SectionEndPrefix = "/* End "

	// SectionSuffix terminates both marker forms.
	SectionSuffix = " section */"

	// ============================================================================
	// Record Type Tags
	// ============================================================================

	// IsaBuildFile tags build-inclusion wrapper records.
	IsaBuildFile = "PBXBuildFile"

	// IsaFileReference tags file reference records.
	IsaFileReference = "PBXFileReference"

	// IsaGroup tags group tree records.
	IsaGroup = "PBXGroup"

	// BuildPhaseSuffix identifies any build phase record type
	// (PBXSourcesBuildPhase, PBXResourcesBuildPhase, ...).
	BuildPhaseSuffix = "BuildPhase"

	// ============================================================================
	// Structural Tokens
	// ============================================================================

	// CommentOpen and CommentClose delimit inline display-name comments.
	CommentOpen  = "/* "
	CommentClose = " */"

	// ChildListOpen starts a group's child list.
	ChildListOpen = "children = ("

	// ListClose terminates a child or entry list.
	ListClose = ");"

	// RecordClose terminates a multi-line record.
	RecordClose = "};"

	// WrapperNameInfix joins an artifact name to its phase name in wrapper
	// comments ("B.src in Sources").
	WrapperNameInfix = " in "

	// ============================================================================
	// Indentation (two tabs for records, four for list entries)
	// ============================================================================

	RecordIndent = "\t\t"
	FieldIndent  = "\t\t\t"
	EntryIndent  = "\t\t\t\t"
)
