package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod_Single(t *testing.T) {
	t.Run("resolves a single month", func(t *testing.T) {
		p, err := ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2025, Month: 3})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC), p.End)
		assert.Equal(t, "2025-03", p.Label)
		assert.Equal(t, "March 2025", p.Description)
	})

	t.Run("zero-pads the month label", func(t *testing.T) {
		p, err := ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2025, Month: 12})

		require.NoError(t, err)
		assert.Equal(t, "2025-12", p.Label)
		assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), p.End)
	})

	t.Run("february of a leap year ends on the 29th", func(t *testing.T) {
		p, err := ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2024, Month: 2})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), p.End)
	})

	t.Run("rejects month out of range", func(t *testing.T) {
		_, err := ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2025, Month: 13})
		assert.Error(t, err)

		_, err = ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2025, Month: 0})
		assert.Error(t, err)
	})
}

func TestResolvePeriod_Yearly(t *testing.T) {
	p, err := ResolvePeriod(PeriodInput{Mode: ModeYearly, Year: 2025})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), p.End)
	assert.Equal(t, "2025", p.Label)
	assert.Equal(t, "Year 2025", p.Description)
}

func TestResolvePeriod_Range(t *testing.T) {
	t.Run("resolves a multi-month range", func(t *testing.T) {
		p, err := ResolvePeriod(PeriodInput{
			Mode:       ModeRange,
			StartYear:  2025, StartMonth: 1,
			EndYear: 2025, EndMonth: 6,
		})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC), p.End)
		assert.Equal(t, "2025-01_to_2025-06", p.Label)
		assert.Equal(t, "Jan 2025 to Jun 2025", p.Description)
	})

	t.Run("a range of one month equals that month", func(t *testing.T) {
		single, err := ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2025, Month: 4})
		require.NoError(t, err)

		ranged, err := ResolvePeriod(PeriodInput{
			Mode:       ModeRange,
			StartYear:  2025, StartMonth: 4,
			EndYear: 2025, EndMonth: 4,
		})
		require.NoError(t, err)

		assert.Equal(t, single.Start, ranged.Start)
		assert.Equal(t, single.End, ranged.End)
	})

	t.Run("spans a year boundary", func(t *testing.T) {
		p, err := ResolvePeriod(PeriodInput{
			Mode:       ModeRange,
			StartYear:  2024, StartMonth: 11,
			EndYear: 2025, EndMonth: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC), p.End)
	})

	t.Run("rejects a reversed range", func(t *testing.T) {
		_, err := ResolvePeriod(PeriodInput{
			Mode:       ModeRange,
			StartYear:  2025, StartMonth: 6,
			EndYear: 2025, EndMonth: 1,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "before the start month")
	})
}

func TestResolvePeriod_UnknownMode(t *testing.T) {
	_, err := ResolvePeriod(PeriodInput{Mode: Mode("quarterly"), Year: 2025})
	assert.Error(t, err)
}

func TestDefaultPeriod(t *testing.T) {
	t.Run("returns the previous month", func(t *testing.T) {
		in := DefaultPeriod(time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC))

		assert.Equal(t, ModeSingle, in.Mode)
		assert.Equal(t, 2025, in.Year)
		assert.Equal(t, 2, in.Month)
	})

	t.Run("january rolls back to december of the previous year", func(t *testing.T) {
		in := DefaultPeriod(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, 2024, in.Year)
		assert.Equal(t, 12, in.Month)
	})

	t.Run("is stable on the 31st", func(t *testing.T) {
		in := DefaultPeriod(time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC))

		assert.Equal(t, 2025, in.Year)
		assert.Equal(t, 2, in.Month)
	})
}

func TestPeriod_Contains(t *testing.T) {
	p, err := ResolvePeriod(PeriodInput{Mode: ModeSingle, Year: 2025, Month: 3})
	require.NoError(t, err)

	assert.True(t, p.Contains(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)))
}

func TestArtifactKey(t *testing.T) {
	t.Run("replaces spaces in the branch name", func(t *testing.T) {
		fileName, filePath := ArtifactKey("Kabul Main Branch", "2025-03")

		assert.Equal(t, "Kabul_Main_Branch_2025-03.pdf", fileName)
		assert.Equal(t, "2025-03/Kabul_Main_Branch_2025-03.pdf", filePath)
	})

	t.Run("all branches scope", func(t *testing.T) {
		fileName, filePath := ArtifactKey("All Branches", "2025")

		assert.Equal(t, "All_Branches_2025.pdf", fileName)
		assert.Equal(t, "2025/All_Branches_2025.pdf", filePath)
	})
}
