package cli

import (
	"encoding/json"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac"
)

func TestValueCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"date add clamps", []string{"date", "add", "2020-02-29", "P1Y"}, "2021-02-28"},
		{"date add months in one step", []string{"date", "add", "2020-01-31", "P1Y1M"}, "2021-02-28"},
		{"date sub", []string{"date", "sub", "2020-03-31", "P1M"}, "2020-02-29"},
		{"date parse basic", []string{"date", "parse", "20190131"}, "2019-01-31"},
		{"date of number", []string{"date", "of", "2019", "3", "15"}, "2019-03-15"},
		{"date of name", []string{"date", "of", "2019", "mar", "15"}, "2019-03-15"},
		{"date of german name", []string{"--lang", "de", "date", "of", "2019", "März", "15"}, "2019-03-15"},
		{"date from epoch", []string{"date", "from-epoch", "18321"}, "2020-02-29"},
		{"period normalize", []string{"period", "normalize", "P1Y14M3D"}, "P2Y2M3D"},
		{"period add", []string{"period", "add", "P1Y2M", "P3M4D"}, "P1Y5M4D"},
		{"period sub", []string{"period", "sub", "P1M", "P2M"}, "P-1M"},
		{"period mul", []string{"period", "mul", "P1Y2D", "3"}, "P3Y6D"},
		{"duration add", []string{"duration", "add", "PT1H", "PT30M"}, "PT1H30M"},
		{"duration sub", []string{"duration", "sub", "PT1S", "PT1.8S"}, "PT-0.8S"},
		{"duration mul", []string{"duration", "mul", "PT1.5S", "3"}, "PT4.5S"},
		{"duration div", []string{"duration", "div", "PT1H", "4"}, "PT15M"},
		{"duration truncate", []string{"duration", "truncate", "PT1H2M3.5S", "minutes"}, "PT1H2M"},
		{"duration from minutes", []string{"duration", "from", "90", "minutes"}, "PT1H30M"},
		{"duration from weeks", []string{"duration", "from", "1", "weeks"}, "PT168H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", stdout)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{"nonexistent date", []string{"date", "parse", "2019-02-30"}, "PARSE_FAILURE", ExitFailure},
		{"bad period", []string{"date", "add", "2020-01-01", "P1X"}, "PARSE_FAILURE", ExitFailure},
		{"invalid fields", []string{"date", "of", "2019", "13", "1"}, "INVALID_DATE", ExitFailure},
		{"unknown month name", []string{"date", "of", "2019", "Smarch", "1"}, ErrCodeBadInput, ExitCommandError},
		{"epoch overflow", []string{"date", "from-epoch", "9223372036854775807"}, "ARITHMETIC_OVERFLOW", ExitFailure},
		{"not a number", []string{"date", "from-epoch", "ten"}, ErrCodeBadInput, ExitCommandError},
		{"scalar beyond 32 bits", []string{"period", "mul", "P1D", "3000000000"}, ErrCodeBadInput, ExitCommandError},
		{"division by zero", []string{"duration", "div", "PT1S", "0"}, "DIVISION_BY_ZERO", ExitFailure},
		{"calendar unit", []string{"duration", "from", "1", "months"}, ErrCodeBadInput, ExitCommandError},
		{"unknown unit", []string{"duration", "truncate", "PT1S", "fortnights"}, ErrCodeBadInput, ExitCommandError},
		{"unbounded interval", []string{"range", "2020-01-01/.."}, "INVALID_ARGUMENT", ExitFailure},
		{"zero step", []string{"range", "2020-01-01", "2020-01-05", "--step", "0"}, "INVALID_ARGUMENT", ExitFailure},
		{"over limit", []string{"range", "2020-01-01", "2020-12-31", "--limit", "10"}, ErrCodeBadInput, ExitCommandError},
		{"bad unit", []string{"range", "2020-01-01", "2020-12-31", "--unit", "decades"}, ErrCodeBadInput, ExitCommandError},
		{"unknown zone", []string{"today", "--tz", "Nowhere/Place"}, ErrCodeBadInput, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, append([]string{"--format", "json"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.TraceID)
		})
	}
}

func TestCommandErrors_Text(t *testing.T) {
	stdout, _, err := execute(t, "date", "parse", "2019-02-30")
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [PARSE_FAILURE]")
	assert.Contains(t, stdout, "2019-02-30")
}

func TestDateInfo(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "date", "info", "2020-02-29")
	require.NoError(t, err)

	var info dateInfo
	decodeData(t, stdout, &info)
	assert.Equal(t, dateInfo{
		Date:          "2020-02-29",
		Year:          2020,
		Month:         2,
		MonthName:     "February",
		Day:           29,
		DayOfWeek:     "Saturday",
		DayOfYear:     60,
		EpochDay:      18321,
		LeapYear:      true,
		LengthOfMonth: 29,
	}, info)
}

func TestDateInfo_Localized(t *testing.T) {
	stdout, _, err := execute(t, "--lang", "de", "date", "info", "2020-02-29")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Wochentag")
	assert.Contains(t, stdout, "Samstag")
	assert.Contains(t, stdout, "Februar")
	assert.Contains(t, stdout, "18.321")
	assert.Contains(t, stdout, "ja")
}

func TestDateInfo_UnsupportedLanguageFallsBack(t *testing.T) {
	stdout, _, err := execute(t, "--lang", "ja", "--format", "json", "date", "info", "2020-02-29")
	require.NoError(t, err)

	var info dateInfo
	decodeData(t, stdout, &info)
	assert.Equal(t, "February", info.MonthName)
	assert.Equal(t, "Saturday", info.DayOfWeek)
}

func TestDateDiff(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "date", "diff", "2020-01-01", "2021-03-15")
	require.NoError(t, err)

	var diff dateDiff
	decodeData(t, stdout, &diff)
	assert.Equal(t, dateDiff{Period: "P1Y2M14D", Years: 1, Months: 14, Weeks: 62, Days: 439}, diff)

	stdout, _, err = execute(t, "date", "diff", "2020-01-01", "2021-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "P1Y2M14D")
	assert.Contains(t, stdout, "439")
}

func TestDurationParts(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "duration", "parts", "PT25H1M1.5S", "--largest", "days")
	require.NoError(t, err)

	var parts durationParts
	decodeData(t, stdout, &parts)
	assert.Equal(t, []durationPart{
		{"days", 1},
		{"hours", 1},
		{"minutes", 1},
		{"seconds", 1},
		{"nanoseconds", 500_000_000},
	}, parts.Parts)

	stdout, _, err = execute(t, "duration", "parts", "PT25H")
	require.NoError(t, err)
	assert.Equal(t, "25 hours\n", stdout)

	stdout, _, err = execute(t, "duration", "parts", "PT0S")
	require.NoError(t, err)
	assert.Equal(t, "0 seconds\n", stdout)
}

func TestRange(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		progression string
		dates       []string
	}{
		{
			name:        "months keep the start day",
			args:        []string{"2020-01-31", "2020-05-31", "--unit", "months"},
			progression: "2020-01-31..2020-05-31 step P1M",
			dates:       []string{"2020-01-31", "2020-02-29", "2020-03-31", "2020-04-30", "2020-05-31"},
		},
		{
			name:        "counting down",
			args:        []string{"2020-03-10", "2020-03-01", "--step", "-3"},
			progression: "2020-03-10 downTo 2020-03-01 step P3D",
			dates:       []string{"2020-03-10", "2020-03-07", "2020-03-04", "2020-03-01"},
		},
		{
			name:        "weeks",
			args:        []string{"2020-01-01", "2020-01-31", "--unit", "weeks"},
			progression: "2020-01-01..2020-01-29 step P7D",
			dates:       []string{"2020-01-01", "2020-01-08", "2020-01-15", "2020-01-22", "2020-01-29"},
		},
		{
			name:        "years from a leap day",
			args:        []string{"2020-02-29", "2024-03-01", "--unit", "years", "--step", "2"},
			progression: "2020-02-29..2024-02-29 step P24M",
			dates:       []string{"2020-02-29", "2022-02-28", "2024-02-29"},
		},
		{
			name:        "interval",
			args:        []string{"2020-12-30/2021-01-02"},
			progression: "2020-12-30..2021-01-02 step P1D",
			dates:       []string{"2020-12-30", "2020-12-31", "2021-01-01", "2021-01-02"},
		},
		{
			name:        "empty",
			args:        []string{"2020-01-02", "2020-01-01"},
			progression: "2020-01-02..2020-01-01 step P1D",
			dates:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, append([]string{"--format", "json", "range"}, tt.args...)...)
			require.NoError(t, err)

			var res rangeResult
			decodeData(t, stdout, &res)
			assert.Equal(t, tt.progression, res.Progression)
			assert.Equal(t, tt.dates, res.Dates)
			assert.Equal(t, int64(len(tt.dates)), res.Count)
		})
	}
}

func TestRange_Text(t *testing.T) {
	stdout, _, err := execute(t, "range", "2020-01-01", "2020-01-03")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"2020-01-01", "2020-01-02", "2020-01-03"}, lines[:3])
	assert.Equal(t, "3 dates (2020-01-01..2020-01-03 step P1D)", lines[3])
}

func TestRange_Random(t *testing.T) {
	args := []string{"--format", "json", "range", "2020-01-01/2020-01-31", "--random", "--seed", "7"}

	stdout, _, err := execute(t, args...)
	require.NoError(t, err)
	var first valueResult
	decodeData(t, stdout, &first)

	d, err := almanac.ParseDate(first.Value)
	require.NoError(t, err)
	r, err := almanac.ParseDateRange("2020-01-01/2020-01-31")
	require.NoError(t, err)
	assert.True(t, r.Contains(d), "random date %s outside range", d)

	stdout, _, err = execute(t, args...)
	require.NoError(t, err)
	var second valueResult
	decodeData(t, stdout, &second)
	assert.Equal(t, first, second, "same seed, same date")

	_, _, err = execute(t, "range", "2020-01-02", "2020-01-01", "--random")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestToday(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"UTC", "2020-02-29"},
		{"Asia/Tokyo", "2020-03-01"},
		{"America/New_York", "2020-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			stdout, _, err := execute(t, "--format", "json", "--tz", tt.tz, "today")
			require.NoError(t, err)

			var info dateInfo
			decodeData(t, stdout, &info)
			assert.Equal(t, tt.want, info.Date)
		})
	}
}
