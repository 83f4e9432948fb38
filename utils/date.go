package utils

import "time"

// ValidateDate checks that date is a calendar day in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return BadRequest("Invalid date, expected YYYY-MM-DD")
	}
	return nil
}
