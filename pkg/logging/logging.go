package logging

// Shared zap field names so log output stays queryable across packages.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldType      = "type"
	FieldPort      = "port"
	FieldSignal    = "signal"
	FieldUserId    = "userId"
	FieldItemId    = "itemId"
)
