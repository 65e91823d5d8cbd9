package monitor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_NewestFirstCapped(t *testing.T) {
	feed := NewFeed(0)
	for i := 0; i < 25; i++ {
		feed.Push(LogEntry{URL: fmt.Sprintf("/%d", i)})
	}

	rows := feed.Entries()
	require.Len(t, rows, DefaultFeedRows)
	for i, row := range rows {
		assert.Equal(t, fmt.Sprintf("/%d", 24-i), row.URL)
	}
}

func TestFeed_BelowLimit(t *testing.T) {
	feed := NewFeed(5)
	feed.Push(LogEntry{URL: "/a"})
	feed.Push(LogEntry{URL: "/b"})

	assert.Equal(t, 2, feed.Len())
	assert.Equal(t, []LogEntry{{URL: "/b"}, {URL: "/a"}}, feed.Entries())
}

func TestFeed_EntriesIsACopy(t *testing.T) {
	feed := NewFeed(3)
	feed.Push(LogEntry{URL: "/a"})

	rows := feed.Entries()
	rows[0].URL = "/changed"
	assert.Equal(t, "/a", feed.Entries()[0].URL)
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{200, ClassSuccess},
		{201, ClassSuccess},
		{299, ClassSuccess},
		{301, ClassOther},
		{400, ClassOther},
		{404, ClassClientError},
		{422, ClassOther},
		{500, ClassServerError},
		{503, ClassServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusClass(tt.status))
		})
	}
}
