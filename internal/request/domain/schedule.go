package domain

import (
	"time"

	"wastehub/internal/model"
)

// MaterializationHorizonDays — насколько вперед материализуются даты вывоза
// для регулярных заявок без конечной даты.
const MaterializationHorizonDays = 90

// ValidFrequency проверяет, что строка — известная частота повторения
func ValidFrequency(freq string) bool {
	switch freq {
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyBiweekly, model.FrequencyMonthly:
		return true
	}
	return false
}

// ValidateRecurrence проверяет согласованность правила повторения.
// WEEKLY и BIWEEKLY требуют day_of_week, MONTHLY — day_of_month.
func ValidateRecurrence(rec *RecurringCollection) *ValidationError {
	verr := NewValidationError()

	if !ValidFrequency(rec.Frequency) {
		verr.Add("frequency", "must be one of DAILY, WEEKLY, BIWEEKLY, MONTHLY")
		return verr
	}

	switch rec.Frequency {
	case model.FrequencyWeekly, model.FrequencyBiweekly:
		if rec.DayOfWeek == nil || *rec.DayOfWeek < 1 || *rec.DayOfWeek > 7 {
			verr.Add("day_of_week", "must be between 1 (Monday) and 7 (Sunday)")
		}
	case model.FrequencyMonthly:
		if rec.DayOfMonth == nil || *rec.DayOfMonth < 1 || *rec.DayOfMonth > 31 {
			verr.Add("day_of_month", "must be between 1 and 31")
		}
	}

	if rec.EndDate != nil && !rec.EndDate.After(rec.StartDate) {
		verr.Add("end_date", "must be after start_date")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// ExpandOccurrences материализует даты вывоза по правилу повторения,
// начиная с from (включительно) и не дальше горизонта либо end_date.
// Возвращает даты, усеченные до полуночи UTC.
func ExpandOccurrences(rec *RecurringCollection, from time.Time) []time.Time {
	start := truncateDay(rec.StartDate)
	cursor := truncateDay(from)
	if cursor.Before(start) {
		cursor = start
	}

	horizon := truncateDay(from).AddDate(0, 0, MaterializationHorizonDays)
	if rec.EndDate != nil {
		end := truncateDay(*rec.EndDate)
		if end.Before(horizon) {
			horizon = end
		}
	}

	var dates []time.Time

	switch rec.Frequency {
	case model.FrequencyDaily:
		for d := cursor; !d.After(horizon); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}

	case model.FrequencyWeekly, model.FrequencyBiweekly:
		step := 7
		if rec.Frequency == model.FrequencyBiweekly {
			step = 14
		}
		// первая дата нужного дня недели не раньше start
		d := nextWeekday(start, *rec.DayOfWeek)
		// для biweekly шагаем от якоря start, чтобы не сбивать четность недель
		for ; !d.After(horizon); d = d.AddDate(0, 0, step) {
			if !d.Before(cursor) {
				dates = append(dates, d)
			}
		}

	case model.FrequencyMonthly:
		dom := *rec.DayOfMonth
		y, m, _ := start.Date()
		for {
			d := monthlyOccurrence(y, int(m), dom, start.Location())
			if d.After(horizon) {
				break
			}
			if !d.Before(cursor) && !d.Before(start) {
				dates = append(dates, d)
			}
			m++
			if m > 12 {
				m = 1
				y++
			}
		}
	}

	return dates
}

// nextWeekday возвращает первую дату с указанным ISO-днем недели (1=Пн..7=Вс),
// не раньше from
func nextWeekday(from time.Time, isoDow int) time.Time {
	current := int(from.Weekday())
	if current == 0 {
		current = 7 // Sunday
	}
	delta := (isoDow - current + 7) % 7
	return from.AddDate(0, 0, delta)
}

// monthlyOccurrence возвращает дату dom-го числа месяца.
// Если в месяце меньше дней, берется последний день месяца.
func monthlyOccurrence(year, month, dom int, loc *time.Location) time.Time {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc).Day()
	if dom > lastDay {
		dom = lastDay
	}
	return time.Date(year, time.Month(month), dom, 0, 0, 0, 0, loc)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
