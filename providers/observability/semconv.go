package observability

// Semantic conventions shared by every component that records observations.

// --- Generic ---

const (
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status.description"
)

// --- Calculator ---

const (
	// AttrCalcOperation is the operation name ("add", "divide", ...).
	AttrCalcOperation = "calc.operation"
	AttrCalcOperandA  = "calc.operand.a"
	AttrCalcOperandB  = "calc.operand.b"
	AttrCalcResult    = "calc.result"
	// AttrCalcResultKind is "int" or "float".
	AttrCalcResultKind = "calc.result.kind"
	// AttrCalcErrorKind is "invalid_argument_type" or "division_by_zero".
	AttrCalcErrorKind = "calc.error.kind"

	MetricCalcOperations = "calc.operations.total"
	MetricCalcErrors     = "calc.errors.total"
)

// --- Tool execution ---

const (
	AttrToolName     = "tool.name"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolError    = "tool.error"
	AttrToolDuration = "tool.duration"

	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"
)

// --- Self-test ---

const (
	SpanSelfTestRun = "selftest.run"

	AttrSelfTestCase   = "selftest.case"
	AttrSelfTestPassed = "selftest.passed"
	AttrSelfTestFailed = "selftest.failed"

	MetricSelfTestCases = "selftest.cases.total"
	// MetricSelfTestDuration records each case's duration in milliseconds.
	MetricSelfTestDuration = "selftest.case.duration_ms"
)
