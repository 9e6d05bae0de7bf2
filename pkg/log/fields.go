package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Domain
	FieldCaregiverID = "caregiver_id"
	FieldSortBy      = "sort_by"
	FieldResultCount = "result_count"

	// Service
	FieldService = "service"
)
