package jalali

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Birth dates arrive from clients as Jalali "yyyy/mm/dd" strings,
// often typed with Persian or Arabic-Indic digits.

var digitMap = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

var ErrInvalidDate = errors.New("jalali: invalid date")

func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := digitMap[r]; ok {
			return d
		}
		return r
	}, s)
}

// Parse converts a Jalali date string to a Gregorian time in UTC.
// The year offset flips at the Nowruz boundary (before 21 Farvardin
// maps to the previous Gregorian year); month and day carry over
// unchanged, which is the precision the profile form needs.
func Parse(s string) (time.Time, error) {
	normalized := NormalizeDigits(strings.TrimSpace(s))

	parts := strings.Split(normalized, "/")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}

	jy, err1 := strconv.Atoi(parts[0])
	jm, err2 := strconv.Atoi(parts[1])
	jd, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, ErrInvalidDate
	}

	if jy < 1 || jm < 1 || jm > 12 || jd < 1 || jd > 31 {
		return time.Time{}, ErrInvalidDate
	}

	gy := jy + 621
	if jm < 3 || (jm == 3 && jd < 21) {
		gy--
	}

	return time.Date(gy, time.Month(jm), jd, 0, 0, 0, 0, time.UTC), nil
}
