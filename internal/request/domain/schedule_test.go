package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestValidateRecurrence(t *testing.T) {
	t.Run("daily needs nothing extra", func(t *testing.T) {
		rec := &RecurringCollection{
			Frequency: model.FrequencyDaily,
			StartDate: date(2026, time.September, 1),
		}
		assert.Nil(t, ValidateRecurrence(rec))
	})

	t.Run("weekly requires day_of_week", func(t *testing.T) {
		rec := &RecurringCollection{
			Frequency: model.FrequencyWeekly,
			StartDate: date(2026, time.September, 1),
		}
		verr := ValidateRecurrence(rec)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "day_of_week")
	})

	t.Run("day_of_week out of range", func(t *testing.T) {
		rec := &RecurringCollection{
			Frequency: model.FrequencyBiweekly,
			DayOfWeek: intPtr(8),
			StartDate: date(2026, time.September, 1),
		}
		verr := ValidateRecurrence(rec)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "day_of_week")
	})

	t.Run("monthly requires day_of_month", func(t *testing.T) {
		rec := &RecurringCollection{
			Frequency: model.FrequencyMonthly,
			StartDate: date(2026, time.September, 1),
		}
		verr := ValidateRecurrence(rec)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "day_of_month")
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		end := date(2026, time.August, 1)
		rec := &RecurringCollection{
			Frequency: model.FrequencyDaily,
			StartDate: date(2026, time.September, 1),
			EndDate:   &end,
		}
		verr := ValidateRecurrence(rec)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "end_date")
	})

	t.Run("unknown frequency", func(t *testing.T) {
		rec := &RecurringCollection{
			Frequency: "YEARLY",
			StartDate: date(2026, time.September, 1),
		}
		verr := ValidateRecurrence(rec)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "frequency")
	})
}

func TestExpandOccurrences_Daily(t *testing.T) {
	end := date(2026, time.September, 5)
	rec := &RecurringCollection{
		Frequency: model.FrequencyDaily,
		StartDate: date(2026, time.September, 1),
		EndDate:   &end,
	}

	dates := ExpandOccurrences(rec, date(2026, time.September, 1))

	require.Len(t, dates, 5)
	assert.Equal(t, date(2026, time.September, 1), dates[0])
	assert.Equal(t, date(2026, time.September, 5), dates[4])
}

func TestExpandOccurrences_DailyStartsAtFrom(t *testing.T) {
	end := date(2026, time.September, 10)
	rec := &RecurringCollection{
		Frequency: model.FrequencyDaily,
		StartDate: date(2026, time.September, 1),
		EndDate:   &end,
	}

	// from позже start: прошедшие даты не материализуются
	dates := ExpandOccurrences(rec, date(2026, time.September, 8))

	require.Len(t, dates, 3)
	assert.Equal(t, date(2026, time.September, 8), dates[0])
}

func TestExpandOccurrences_Weekly(t *testing.T) {
	// 2026-09-01 — вторник
	end := date(2026, time.September, 30)
	rec := &RecurringCollection{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: intPtr(5), // пятница
		StartDate: date(2026, time.September, 1),
		EndDate:   &end,
	}

	dates := ExpandOccurrences(rec, date(2026, time.September, 1))

	require.Len(t, dates, 4)
	assert.Equal(t, date(2026, time.September, 4), dates[0])
	assert.Equal(t, date(2026, time.September, 25), dates[3])
	for _, d := range dates {
		assert.Equal(t, time.Friday, d.Weekday())
	}
}

func TestExpandOccurrences_BiweeklyKeepsAnchorParity(t *testing.T) {
	end := date(2026, time.October, 31)
	rec := &RecurringCollection{
		Frequency: model.FrequencyBiweekly,
		DayOfWeek: intPtr(1), // понедельник
		StartDate: date(2026, time.September, 1),
		EndDate:   &end,
	}

	// первый понедельник после якоря — 7 сентября, далее каждые 14 дней
	all := ExpandOccurrences(rec, date(2026, time.September, 1))
	require.NotEmpty(t, all)
	assert.Equal(t, date(2026, time.September, 7), all[0])
	for i := 1; i < len(all); i++ {
		assert.Equal(t, 14*24*time.Hour, all[i].Sub(all[i-1]))
	}

	// from в "пропущенную" неделю не сдвигает четность: следующая дата
	// остается на сетке якоря
	later := ExpandOccurrences(rec, date(2026, time.September, 14))
	require.NotEmpty(t, later)
	assert.Equal(t, date(2026, time.September, 21), later[0])
}

func TestExpandOccurrences_MonthlyClampsShortMonths(t *testing.T) {
	end := date(2027, time.March, 15)
	rec := &RecurringCollection{
		Frequency:  model.FrequencyMonthly,
		DayOfMonth: intPtr(31),
		StartDate:  date(2026, time.December, 1),
		EndDate:    &end,
	}

	dates := ExpandOccurrences(rec, date(2026, time.December, 1))

	require.Len(t, dates, 3)
	assert.Equal(t, date(2026, time.December, 31), dates[0])
	assert.Equal(t, date(2027, time.January, 31), dates[1])
	// февраль 2027 — 28 дней
	assert.Equal(t, date(2027, time.February, 28), dates[2])
}

func TestExpandOccurrences_HorizonWithoutEndDate(t *testing.T) {
	rec := &RecurringCollection{
		Frequency: model.FrequencyDaily,
		StartDate: date(2026, time.September, 1),
	}

	from := date(2026, time.September, 1)
	dates := ExpandOccurrences(rec, from)

	require.NotEmpty(t, dates)
	horizon := from.AddDate(0, 0, MaterializationHorizonDays)
	assert.Equal(t, horizon, dates[len(dates)-1])
	assert.Len(t, dates, MaterializationHorizonDays+1)
}

func TestExpandOccurrences_EndDateBeforeFrom(t *testing.T) {
	end := date(2026, time.September, 10)
	rec := &RecurringCollection{
		Frequency: model.FrequencyDaily,
		StartDate: date(2026, time.September, 1),
		EndDate:   &end,
	}

	dates := ExpandOccurrences(rec, date(2026, time.October, 1))
	assert.Empty(t, dates)
}
