// Package monthend содержит календарные функции для планировщика
// ежемесячного перевода накоплений.
package monthend

import "time"

// LastDay возвращает последний календарный день месяца, в котором лежит t.
func LastDay(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// IsLastDayOfMonth сообщает, является ли t последним днём своего месяца.
func IsLastDayOfMonth(t time.Time) bool {
	return t.Day() == LastDay(t).Day()
}

// UntilMonthEnd возвращает задержку в целых днях от t до последнего дня месяца.
// Для t, уже попавшего на последний день, задержка нулевая.
func UntilMonthEnd(t time.Time) time.Duration {
	days := LastDay(t).Day() - t.Day()
	return time.Duration(days) * 24 * time.Hour
}
