package domain

import "errors"

var (
	// ErrWrongPathCount means contouring a half-grid did not yield exactly
	// the two open paths that bound the oval.
	ErrWrongPathCount = errors.New("unexpected contour path count")

	// ErrThresholdOutOfRange means the threshold does not lie strictly
	// inside the value range of the field slice, so no boundary exists.
	ErrThresholdOutOfRange = errors.New("threshold outside field range")

	// ErrIndexOutOfRange means a fractional index fell outside an axis.
	ErrIndexOutOfRange = errors.New("index outside axis")

	// ErrKpOutOfRange means the Kp index has no entry in the model tables.
	ErrKpOutOfRange = errors.New("kp index outside model tables")
)

// FailureReason maps an extraction error to a short label for metrics.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWrongPathCount):
		return "wrong_path_count"
	case errors.Is(err, ErrThresholdOutOfRange):
		return "threshold_out_of_range"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrKpOutOfRange):
		return "kp_out_of_range"
	default:
		return "other"
	}
}
