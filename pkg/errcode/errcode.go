package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Home directory and config file errors
	HomeDirError
	WriteConfigError
	ReadConfigError

	// Logging errors
	OpenLogError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBTransactionError
	DBQueryError
	DBInsertError
	DBUnsupportedDriverError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError
	SchemaIndexError

	// Input errors
	InputReadError
	InputParseError
	InvalidRecordError

	// Resolution errors
	ResolveRecordError
	ResolveAllRecordsFailedError
	ResolveBulkError
	ResolveCancelledError
	MergeError
	LinkExistsError
	InvalidLinkError

	// Probabilistic matching errors
	ModelLoadError
	ModelSaveError
	ModelTrainError
	ModelCandidatesError

	// Validation errors
	ValidationLookupError
)
