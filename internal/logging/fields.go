package logging

// Structured field keys shared by every sortdir component.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	// FieldPassRoot is the directory a sort pass scans.
	FieldPassRoot = "pass_root"
	// FieldPassDepth is how many archives deep the pass is.
	FieldPassDepth = "pass_depth"

	// FieldSource and FieldTarget describe where a file came from and where
	// it was filed. The console handler prints them as one "source -> target" line.
	FieldSource   = "source"
	FieldTarget   = "target"
	FieldCategory = "category"

	// FieldEventType names the kind of event a warning records.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)
