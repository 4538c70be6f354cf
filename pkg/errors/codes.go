package errors

// ErrorCodeInfo contains metadata about an error code.
type ErrorCodeInfo struct {
	Code            ErrorCode
	Description     string
	SuggestedAction string
}

// ErrorCodeRegistry maps error codes to their metadata.
var ErrorCodeRegistry = map[ErrorCode]ErrorCodeInfo{
	ErrInsufficientData: {
		Code:            ErrInsufficientData,
		Description:     "Not enough rows or days for the analytic",
		SuggestedAction: "Export a longer chat history; pattern anomalies need at least 5 active days",
	},
	ErrNonFiniteFeature: {
		Code:            ErrNonFiniteFeature,
		Description:     "A daily feature was NaN or infinite",
		SuggestedAction: "Check the sentiment scorer output: chatpulse analyze <file> --debug",
	},
	ErrModelFailure: {
		Code:            ErrModelFailure,
		Description:     "The outlier model could not be fitted",
		SuggestedAction: "Re-run with --debug to see the feature matrix size",
	},
	ErrPanic: {
		Code:            ErrPanic,
		Description:     "The analytic panicked and was skipped",
		SuggestedAction: "Report the transcript shape (line count, authors) with the --debug log",
	},
	ErrCancelled: {
		Code:            ErrCancelled,
		Description:     "Analysis cancelled before completion",
		SuggestedAction: "Check if cancellation was intentional (SIGINT)",
	},
	ErrInternal: {
		Code:            ErrInternal,
		Description:     "Unclassified analytic failure",
		SuggestedAction: "Re-run with --debug and inspect the warning log",
	},
}

// GetSuggestedAction returns the suggested action for an error code.
func GetSuggestedAction(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.SuggestedAction
	}
	return ""
}

// GetDescription returns the description for an error code.
func GetDescription(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Description
	}
	return ""
}
