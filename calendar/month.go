// Package calendar implements the simulated calendar of the estate simulator.
//
// The simulation does not follow wall-clock time. It counts months since the
// start of the game: year 0 month 0 is the first month, and time only moves
// forward in quarters when the player asks for it.
package calendar

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// MonthsPerQuarter is the fixed step of time advancement.
const MonthsPerQuarter = 3

// Month is an absolute month index: year*12 + month-of-year.
type Month int

// New returns the Month for the given year and month of year (0-11).
// Out of range months are normalized into the year.
func New(year, month int) Month { return Month(year*12 + month) }

// Year returns the simulated year.
func (m Month) Year() int { return int(m) / 12 }

// MonthOfYear returns the month within the year, in [0, 11].
func (m Month) MonthOfYear() int { return int(m) % 12 }

// Quarter returns the quarter of the year, from 1 to 4.
func (m Month) Quarter() int { return m.MonthOfYear()/MonthsPerQuarter + 1 }

// Add returns a new Month with i months added.
func (m Month) Add(i int) Month { return m + Month(i) }

// AddQuarter moves one quarter forward.
func (m Month) AddQuarter() Month { return m.Add(MonthsPerQuarter) }

// Since returns the number of months elapsed from x to m.
func (m Month) Since(x Month) int { return int(m - x) }

// Before reports whether the month m is before x.
func (m Month) Before(x Month) bool { return m < x }

// After reports whether the month m is after x.
func (m Month) After(x Month) bool { return m > x }

// Label returns the year label used in the net worth history, e.g. "Y3".
func (m Month) Label() string { return fmt.Sprintf("Y%d", m.Year()) }

// String formats the month as "Y3 Q2" on quarter boundaries and "Y3 M5" otherwise.
func (m Month) String() string {
	if m.MonthOfYear()%MonthsPerQuarter == 0 {
		return fmt.Sprintf("Y%d Q%d", m.Year(), m.Quarter())
	}
	return fmt.Sprintf("Y%d M%d", m.Year(), m.MonthOfYear()+1)
}

// Horizon returns the last year displayed on the timeline: ten years, or two
// years past the current one once the game goes beyond that.
func (m Month) Horizon() int { return max(10, m.Year()+2) }

// Progress returns how far along the timeline the month is, as a percentage
// of the Horizon, capped at 100.
func (m Month) Progress() float64 {
	elapsed := float64(m.Year()) + float64(m.MonthOfYear())/12
	return min(elapsed*100/float64(m.Horizon()), 100)
}

var monthRegexp = regexp.MustCompile(`^Y(\d+)\s*(?:Q([1-4])|M(\d{1,2}))?$`)

// Parse parses a month formatted by String, or a bare year label like "Y3".
func Parse(str string) (Month, error) {
	match := monthRegexp.FindStringSubmatch(str)
	if match == nil {
		return 0, fmt.Errorf("invalid month %q want format \"Y<year> Q<quarter>\" or \"Y<year> M<month>\"", str)
	}
	year, _ := strconv.Atoi(match[1])
	switch {
	case match[2] != "":
		q, _ := strconv.Atoi(match[2])
		return New(year, (q-1)*MonthsPerQuarter), nil
	case match[3] != "":
		mo, _ := strconv.Atoi(match[3])
		if mo < 1 || mo > 12 {
			return 0, fmt.Errorf("invalid month %q: month of year must be in [1, 12]", str)
		}
		return New(year, mo-1), nil
	}
	return New(year, 0), nil
}

// MarshalJSON encodes the month as its absolute index.
func (m Month) MarshalJSON() ([]byte, error) { return json.Marshal(int(m)) }

// UnmarshalJSON accepts either an absolute index or a string accepted by Parse.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var i int
	if err := json.Unmarshal(bytes, &i); err == nil {
		*m = Month(i)
		return nil
	}
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	p, err := Parse(str)
	if err != nil {
		return err
	}
	*m = p
	return nil
}

// check that a Month pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
