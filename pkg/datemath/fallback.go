package datemath

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/ru"
)

func newFallback() *when.Parser {
	w := when.New(nil)
	w.Add(ru.All...)
	w.Add(common.All...)
	return w
}

// resolveFallback asks the general-purpose parser for an instant. Only results that cover the whole
// expression and land after ref are accepted, so prose with a stray number is not mistaken for a deadline.
func resolveFallback(w *when.Parser, s string, ref time.Time) (time.Time, bool) {
	r, err := w.Parse(s, ref)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	if r.Index != 0 || len(r.Text) != len(s) {
		return time.Time{}, false
	}
	t := r.Time.In(ref.Location()).Truncate(time.Minute)
	if !t.After(ref) {
		return time.Time{}, false
	}
	return t, true
}
