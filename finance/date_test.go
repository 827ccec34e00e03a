package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("27-08-2025")
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.August, d.Month())
	assert.Equal(t, "27-08-2025", d.String())
}

func TestParseDateRejectsBadInput(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "2025-08-27", "32-01-2025", "08/27/2025", "today"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDateOrdering(t *testing.T) {
	t.Parallel()

	jan := NewDate(2025, time.January, 15)
	feb := NewDate(2025, time.February, 1)

	assert.True(t, jan.Before(feb))
	assert.True(t, feb.After(jan))
	assert.False(t, jan.IsZero())
	assert.True(t, Date{}.IsZero())
}
