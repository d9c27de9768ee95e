package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUser       = "user"
	FieldRecordID   = "record_id"
	FieldCategory   = "category"
	FieldPeriod     = "period"
	FieldAmount     = "amount"
	FieldLedgerSize = "ledger_size"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentIdentity = "identity"
	ComponentSession  = "session"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentExport   = "export"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpLoad     = "load"
	OpSave     = "save"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpExport   = "export"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
