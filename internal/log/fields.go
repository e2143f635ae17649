package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldTable     = "table"
	FieldRows      = "rows"
	FieldAccount   = "account"
	FieldRuleType  = "rule_type"
	FieldDate      = "date"
	FieldBalance   = "balance"
	FieldAmount    = "amount"
	FieldFile      = "file"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentForecast = "forecast"
	ComponentSheets   = "sheets"
	ComponentImporter = "importer"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
)

// Operations defines standard operation names.
const (
	OpLoad    = "load"
	OpProject = "project"
	OpWrite   = "write"
	OpImport  = "import"
	OpPublish = "publish"
	OpConsume = "consume"
	OpRun     = "run"
)
