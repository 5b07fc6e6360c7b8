package enum

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownReportType is returned when parsing an unrecognized report
	// type string.
	ErrUnknownReportType = errors.New("unknown report type")
	// ErrUnknownReportStatus is returned when parsing an unrecognized report
	// status string.
	ErrUnknownReportStatus = errors.New("unknown report status")
)

// ReportType categorizes why a user was reported.
type ReportType int

const (
	ReportTypeSpam ReportType = iota
	ReportTypeInappropriate
	ReportTypeHarassment
	ReportTypeOther
)

var reportTypeNames = map[ReportType]string{
	ReportTypeSpam:          "spam",
	ReportTypeInappropriate: "inappropriate",
	ReportTypeHarassment:    "harassment",
	ReportTypeOther:         "other",
}

// String returns the storage name of the report type.
func (t ReportType) String() string {
	if name, ok := reportTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ReportType(%d)", int(t))
}

// IsValid reports whether the value is a known report type.
func (t ReportType) IsValid() bool {
	_, ok := reportTypeNames[t]
	return ok
}

// ReportTypeString parses a storage name back into a ReportType.
func ReportTypeString(s string) (ReportType, error) {
	for t, name := range reportTypeNames {
		if name == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownReportType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t ReportType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ReportType) UnmarshalText(text []byte) error {
	parsed, err := ReportTypeString(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// ReportStatus tracks a report through moderator review.
type ReportStatus int

const (
	ReportStatusPending ReportStatus = iota
	ReportStatusReviewed
	ReportStatusResolved
	ReportStatusDismissed
)

var reportStatusNames = map[ReportStatus]string{
	ReportStatusPending:   "pending",
	ReportStatusReviewed:  "reviewed",
	ReportStatusResolved:  "resolved",
	ReportStatusDismissed: "dismissed",
}

// String returns the storage name of the report status.
func (s ReportStatus) String() string {
	if name, ok := reportStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("ReportStatus(%d)", int(s))
}

// IsValid reports whether the value is a known report status.
func (s ReportStatus) IsValid() bool {
	_, ok := reportStatusNames[s]
	return ok
}

// IsTerminal reports whether the status ends moderator review.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// ReportStatusString parses a storage name back into a ReportStatus.
func ReportStatusString(str string) (ReportStatus, error) {
	for s, name := range reportStatusNames {
		if name == str {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownReportStatus, str)
}

// MarshalText implements encoding.TextMarshaler.
func (s ReportStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ReportStatus) UnmarshalText(text []byte) error {
	parsed, err := ReportStatusString(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
