package helpers

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern шаблон для ILIKE по подстроке, пустая строка если поиск не задан
func LikePattern(search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(search) + "%"
}

// MonthRange границы месяца, содержащего t
func MonthRange(t time.Time) (from, to time.Time) {
	n := now.With(t)
	return n.BeginningOfMonth(), n.EndOfMonth()
}

// PrevMonthRange границы предыдущего месяца относительно t
func PrevMonthRange(t time.Time) (from, to time.Time) {
	return MonthRange(now.With(t).BeginningOfMonth().AddDate(0, 0, -1))
}
