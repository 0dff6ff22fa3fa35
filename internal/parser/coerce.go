package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/destoken/internal/models"
)

var numberRegex = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Coerce turns an unquoted (or already unquoted) literal into a typed scalar.
// It never fails: anything that is not a boolean, null or number is a String.
func Coerce(raw string) models.Value {
	switch {
	case strings.EqualFold(raw, "true"):
		return models.Bool(true)
	case strings.EqualFold(raw, "false"):
		return models.Bool(false)
	case strings.EqualFold(raw, "null"):
		return models.Null{}
	}

	if !numberRegex.MatchString(raw) {
		return models.String(raw)
	}

	if !strings.Contains(raw, ".") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return models.IntNumber(i)
		}
		// Out of int64 range
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.String(raw)
	}
	return models.FloatNumber(f)
}
