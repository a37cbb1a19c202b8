package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldStoreID    = "store_id"
	FieldStoreName  = "store_name"
	FieldCategoryID = "category_id"
	FieldItemID     = "item_id"
	FieldItemName   = "item_name"
	FieldTripID     = "trip_id"
	FieldQuantity   = "quantity"
	FieldPrice      = "price"
	FieldTaxRate    = "tax_rate"
	FieldCount      = "count"
	FieldDBPath     = "db_path"
	FieldQueue      = "queue"
	FieldExchange   = "exchange"
	FieldEvent      = "event"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCatalog   = "catalog"
	ComponentTrip      = "trip"
	ComponentStorage   = "storage"
	ComponentBootstrap = "bootstrap"
	ComponentTelemetry = "telemetry"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentExport    = "export"
	ComponentCache     = "cache"
	ComponentCapture   = "capture"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpSeed      = "seed"
	OpExport    = "export"
	OpSignal    = "signal"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
