package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldProvider   = "provider"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldYear       = "year"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputDir   = "input_dir"
	FieldOutputFile = "output_file"
	FieldStoreFile  = "store_file"
)
