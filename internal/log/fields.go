package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldUserID    = "user_id"
	FieldKind      = "kind"
	FieldRecordID  = "record_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldDataDir   = "data_dir"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentBus     = "bus"
	ComponentRemote  = "remote"
	ComponentBackend = "backend"
	ComponentAdvice  = "advice"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
	OpAdd         = "add"
	OpDelete      = "delete"
	OpSave        = "save"
	OpSeed        = "seed"
	OpPublish     = "publish"
)
