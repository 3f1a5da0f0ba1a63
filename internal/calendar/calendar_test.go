package calendar

import (
	"errors"
	"testing"
)

func TestParseDatetimeKnownValues(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"Jan 1 00:00:00 1970", 0},
		{"Jun 14 20:25:00 2019", 1560543900},
		{"Oct 29 12:31:56 2020", 1603974716},
		{"Feb 29 00:00:00 2020", 1582934400},
		{"Dec 31 23:59:59 2019", 1577836799},
		{"  Jan   1   00:00:00   2020 ", 1577836800},
		{"", 0},
		{"   ", 0},
	}
	for _, tc := range cases {
		got, err := ParseDatetime(tc.in)
		if err != nil {
			t.Fatalf("ParseDatetime(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseDatetime(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseDatetimeErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"jan 1 00:00:00 2020", ErrInvalidMonth},
		{"JAN 1 00:00:00 2020", ErrInvalidMonth},
		{"Foo 1 00:00:00 2020", ErrInvalidMonth},
		{"Jan x 00:00:00 2020", ErrInvalidFormat},
		{"Jan 0 00:00:00 2020", ErrInvalidFormat},
		{"Jan 1 aa:00:00 2020", ErrInvalidFormat},
		{"Jan 1 00:bb:00 2020", ErrInvalidFormat},
		{"Jan 1 00:00:cc 2020", ErrInvalidFormat},
		{"Jan 1 00:00 2020", ErrInvalidFormat},
		{"Jan 1 00:00:00 year", ErrInvalidFormat},
		{"Jan 1 00:00:00", ErrInvalidFormat},
		{"Jan", ErrInvalidFormat},
		{"Jan 1 -1:00:00 2020", ErrInvalidFormat},
	}
	for _, tc := range cases {
		_, err := ParseDatetime(tc.in)
		if !errors.Is(err, tc.want) {
			t.Errorf("ParseDatetime(%q) err = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestFormatEpoch(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Jan 1 00:00:00 1970"},
		{1560543900, "Jun 14 20:25:00 2019"},
		{1603974716, "Oct 29 12:31:56 2020"},
		{1582934400, "Feb 29 00:00:00 2020"},
		{1577836799, "Dec 31 23:59:59 2019"},
		{1577836800, "Jan 1 00:00:00 2020"},
		{-5, "Jan 1 00:00:00 1970"},
	}
	for _, tc := range cases {
		if got := FormatEpoch(tc.in); got != tc.want {
			t.Errorf("FormatEpoch(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	epochs := []int64{
		0, 59, 86399, 86400,
		951782400,  // Feb 29 2000
		1560543900, // Jun 2019
		1582934400, // Feb 29 2020
		1603974716, // Oct 2020
		1609459199, // Dec 31 2020
		1709251199, // Feb 29 2024 23:59:59
		4102444800, // Jan 1 2100
	}
	for _, e := range epochs {
		s := FormatEpoch(e)
		got, err := ParseDatetime(s)
		if err != nil {
			t.Fatalf("ParseDatetime(FormatEpoch(%d) = %q): %v", e, s, err)
		}
		if got != e {
			t.Errorf("round trip %d -> %q -> %d", e, s, got)
		}
	}
}

func TestEpochYear(t *testing.T) {
	cases := []struct {
		in   int64
		want int
	}{
		{0, 1970},
		{1560543900, 2019},
		{1603974716, 2020},
		{1577836799, 2019},
		{1577836800, 2020},
	}
	for _, tc := range cases {
		if got := EpochYear(tc.in); got != tc.want {
			t.Errorf("EpochYear(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	leap := map[int]bool{
		1970: false,
		1900: false,
		2000: true,
		2019: false,
		2020: true,
		2100: false,
		3200: false,
		6400: false,
	}
	for y, want := range leap {
		if got := IsLeapYear(y); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", y, got, want)
		}
	}
}
