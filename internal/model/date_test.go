package model

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) Date {
	return NewDate(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

func TestDate_Order(t *testing.T) {
	assert.True(t, d(2024, 3, 1).Before(d(2024, 3, 2)))
	assert.False(t, d(2024, 3, 2).Before(d(2024, 3, 1)))
	assert.False(t, d(2024, 3, 1).Before(d(2024, 3, 1)))

	// Valid dates always sort before unparsable ones.
	assert.True(t, d(2024, 3, 1).Before(RawDate("garbage")))
	assert.False(t, RawDate("garbage").Before(d(2024, 3, 1)))

	// Unparsable dates are never reordered among themselves.
	assert.False(t, RawDate("a").Before(RawDate("b")))
	assert.False(t, RawDate("b").Before(RawDate("a")))
}

func TestDate_StableSortKeepsRawOrder(t *testing.T) {
	dates := []Date{RawDate("second"), d(2024, 5, 1), RawDate("third"), d(2024, 4, 1)}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	assert.Equal(t, "2024-04-01", dates[0].String())
	assert.Equal(t, "2024-05-01", dates[1].String())
	assert.Equal(t, "second", dates[2].String())
	assert.Equal(t, "third", dates[3].String())
}

func TestDate_WithinDays(t *testing.T) {
	assert.True(t, d(2024, 3, 1).WithinDays(d(2024, 3, 3), 2))
	assert.True(t, d(2024, 3, 3).WithinDays(d(2024, 3, 1), 2))
	assert.True(t, d(2024, 3, 1).WithinDays(d(2024, 3, 1), 2))
	assert.False(t, d(2024, 3, 1).WithinDays(d(2024, 3, 4), 2))

	assert.False(t, RawDate("garbage").WithinDays(d(2024, 3, 1), 2))
	assert.False(t, d(2024, 3, 1).WithinDays(RawDate("garbage"), 2))
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2024-03-01", d(2024, 3, 1).String())
	assert.Equal(t, "not a date", RawDate("not a date").String())
}
