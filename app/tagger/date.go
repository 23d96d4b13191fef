package tagger

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// dateLayout requires a two-digit month, two-digit day and four-digit year.
const dateLayout = "01/02/2006"

var ErrInvalidDate = errors.New("invalid date")

// FormatDate turns "01/15/2024" into "jan2024".
func FormatDate(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDate, raw, err)
	}

	return strings.ToLower(parsed.Format("Jan2006")), nil
}
