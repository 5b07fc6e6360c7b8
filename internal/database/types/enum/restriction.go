package enum

import (
	"errors"
	"fmt"
)

// ErrUnknownRestrictionType is returned when parsing an unrecognized
// restriction type string.
var ErrUnknownRestrictionType = errors.New("unknown restriction type")

// RestrictionType represents the kind of sanction applied to a user.
type RestrictionType int

const (
	RestrictionTypeMute RestrictionType = iota
	RestrictionTypeShadowBan
	RestrictionTypeViewBan
	RestrictionTypeTempBan
	RestrictionTypePermanentBan
)

// restrictionTypeNames maps types to their wire/storage names.
var restrictionTypeNames = map[RestrictionType]string{
	RestrictionTypeMute:         "mute",
	RestrictionTypeShadowBan:    "shadow_ban",
	RestrictionTypeViewBan:      "view_ban",
	RestrictionTypeTempBan:      "temp_ban",
	RestrictionTypePermanentBan: "permanent_ban",
}

// String returns the storage name of the restriction type.
func (t RestrictionType) String() string {
	if name, ok := restrictionTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("RestrictionType(%d)", int(t))
}

// IsValid reports whether the value is a known restriction type.
func (t RestrictionType) IsValid() bool {
	_, ok := restrictionTypeNames[t]
	return ok
}

// Severity orders restriction types from least to most severe. The declared
// constant order is the precedence order (permanent_ban > temp_ban >
// view_ban > shadow_ban > mute), so the ordinal doubles as severity.
func (t RestrictionType) Severity() int {
	return int(t)
}

// RestrictionTypeString parses a storage name back into a RestrictionType.
func RestrictionTypeString(s string) (RestrictionType, error) {
	for t, name := range restrictionTypeNames {
		if name == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRestrictionType, s)
}

// MarshalText implements encoding.TextMarshaler so the storage name is used
// in JSON payloads and bun columns.
func (t RestrictionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RestrictionType) UnmarshalText(text []byte) error {
	parsed, err := RestrictionTypeString(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
