// Package week содержит вспомогательную функцию определения начала недели,
// используемого как ключ недельного счётчика сообщений ассистенту.
package week

import (
	"time"

	"github.com/jinzhu/now"
)

// Start возвращает понедельник недели, в которую попадает t,
// с обнулённым компонентом времени.
func Start(t time.Time) time.Time {
	cfg := &now.Config{WeekStartDay: time.Monday}
	return cfg.With(t).BeginningOfWeek()
}
