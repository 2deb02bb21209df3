package radix

import (
	"fmt"
	"strings"
)

// NumberConversion selects how numeric text is converted to values.
type NumberConversion int

const (
	// ConversionFull keeps every digit, converting to arbitrary
	// precision.
	ConversionFull NumberConversion = iota

	// ConversionDouble converts through the nearest binary64 value.
	ConversionDouble

	// ConversionIntOrFloat converts integers in the safe integer range
	// exactly and everything else through binary64.
	ConversionIntOrFloat

	// ConversionIntOrFloatFromDouble converts through binary64 first and
	// keeps the result as an integer when it is one in the safe range.
	ConversionIntOrFloatFromDouble
)

func (c NumberConversion) String() string {
	switch c {
	case ConversionFull:
		return "full"
	case ConversionDouble:
		return "double"
	case ConversionIntOrFloat:
		return "intorfloat"
	case ConversionIntOrFloatFromDouble:
		return "intorfloatfromdouble"
	}
	return fmt.Sprintf("NumberConversion(%d)", int(c))
}

// Options carries the behavior switches parsed from an option string.
type Options struct {
	// AllowDuplicateKeys permits repeated object keys during decoding
	// instead of treating them as an error.
	AllowDuplicateKeys bool

	// ReplaceSurrogates replaces unpaired surrogates with the Unicode
	// replacement character instead of rejecting the text.
	ReplaceSurrogates bool

	// Conversion selects the numeric conversion mode.
	Conversion NumberConversion
}

// ParseOptions parses a semicolon-separated option string such as
// "allowduplicatekeys=true;numberconversion=double". Keys are
// case-insensitive, unknown keys are ignored, and when a key is repeated
// the last occurrence wins. An empty string yields the defaults.
func ParseOptions(s string) (Options, error) {
	var o Options
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value := part, ""
		if i := strings.IndexByte(part, '='); i >= 0 {
			key, value = part[:i], part[i+1:]
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch key {
		case "allowduplicatekeys":
			o.AllowDuplicateKeys = parseBoolOption(value)
		case "replacesurrogates":
			o.ReplaceSurrogates = parseBoolOption(value)
		case "numberconversion":
			c, err := parseConversion(value)
			if err != nil {
				return Options{}, err
			}
			o.Conversion = c
		}
	}
	return o, nil
}

func parseBoolOption(value string) bool {
	switch value {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseConversion(value string) (NumberConversion, error) {
	switch value {
	case "", "full":
		return ConversionFull, nil
	case "double":
		return ConversionDouble, nil
	case "intorfloat":
		return ConversionIntOrFloat, nil
	case "intorfloatfromdouble":
		return ConversionIntOrFloatFromDouble, nil
	}
	return ConversionFull, fmt.Errorf("unknown number conversion %q", value)
}
