package xpolicy_test

import (
	"fmt"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
)

func ExamplePolicy_Validate() {
	p := xpolicy.Default()
	// 删除 ERROR 豁免会破坏策略不变量
	delete(p.AlwaysKeep, xevent.SeverityError)

	if err := p.Validate(); err != nil {
		fmt.Println("rejected")
	}
	// Output: rejected
}

func ExamplePolicy_FractionFor() {
	p := xpolicy.Default()
	p.Rules = []xpolicy.Rule{
		{
			Name:     "health-probes",
			Match:    xpolicy.TagsEqual(map[string]string{"endpoint": "/health"}),
			Fraction: 0.001,
		},
	}

	ev := xevent.Event{
		Severity: xevent.SeverityInfo,
		TraceID:  "trace-1",
		Tags:     map[string]string{"endpoint": "/health"},
	}
	f, _ := p.FractionFor(ev)
	fmt.Printf("%.3f\n", f)
	// Output: 0.001
}

func ExampleTagPrefix() {
	pred := xpolicy.TagPrefix("endpoint", "/internal/")
	fmt.Println(pred(map[string]string{"endpoint": "/internal/debug"}))
	fmt.Println(pred(map[string]string{"endpoint": "/api/v1"}))
	// Output:
	// true
	// false
}
