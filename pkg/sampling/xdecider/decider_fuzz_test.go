package xdecider

import (
	"testing"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
)

func FuzzDecide(f *testing.F) {
	f.Add(0.5, 1.0, "trace-1", 3)
	f.Add(0.0, 0.0, "", 0)
	f.Add(1.0, 0.5, "abc", 5)

	f.Fuzz(func(t *testing.T, rate, loadFactor float64, traceID string, sevRaw int) {
		p := xpolicy.Default()
		p.RateBySeverity[xevent.SeverityWarn] = rate
		p.RateBySeverity[xevent.SeverityInfo] = rate
		p.LoadFactor = loadFactor

		d, err := New(p)
		if err != nil {
			// 非法 rate/loadFactor 被校验拒绝即为正确行为
			return
		}

		ev := xevent.Event{
			Severity: xevent.Severity(sevRaw),
			TraceID:  traceID,
		}

		// 不变量: Decide 绝不 panic
		first := d.Decide(ev)

		// 不变量: 同一事件同一快照下结果一致
		for i := 0; i < 3; i++ {
			if got := d.Decide(ev); got != first {
				t.Fatalf("decision not consistent: %v then %v", first, got)
			}
		}

		// 不变量: 畸形事件 fail open
		if ev.Validate() != nil && first != Keep {
			t.Error("malformed event must be kept")
		}

		// 不变量: 豁免级别永远保留
		if ev.Severity == xevent.SeverityError || ev.Severity == xevent.SeverityFatal {
			if first != Keep {
				t.Error("exempt severity must be kept")
			}
		}

		// 不变量: seen >= kept
		snap := d.Stats().Snapshot()
		for _, sev := range xevent.Severities() {
			count := snap.BySeverity(sev)
			if count.Seen < count.Kept {
				t.Errorf("severity %s: seen %d < kept %d", sev, count.Seen, count.Kept)
			}
		}
	})
}
