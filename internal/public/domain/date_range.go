package domain

import "time"

// DateRange は createdAt を日単位で絞り込む期間指定。
// from/to の両方が揃っているときだけ有効になる。
type DateRange struct {
	From time.Time
	To   time.Time
}

// Enabled reports whether both ends of the range are present.
func (r DateRange) Enabled() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Bounds は UTC の日境界に丸めた包含区間を返す。
// 開始は from の 00:00:00 UTC、終了は to の翌日 00:00:00 UTC の直前。
func (r DateRange) Bounds() (start, end time.Time, ok bool) {
	if !r.Enabled() {
		return time.Time{}, time.Time{}, false
	}
	start = startOfDayUTC(r.From)
	end = startOfDayUTC(r.To).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end, true
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
