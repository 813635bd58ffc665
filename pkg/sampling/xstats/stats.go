package xstats

import (
	"sync/atomic"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
)

// severityCounter 单个严重级别的计数器对。
type severityCounter struct {
	seen atomic.Uint64
	kept atomic.Uint64
}

// Collector 按严重级别的采样计数器集合
//
// 零值即可使用。所有方法并发安全：Record 为无锁原子递增，
// 读取方法为 wait-free 原子读取。
type Collector struct {
	counters [xevent.NumSeverities]severityCounter
}

// NewCollector 创建计数器集合。
func NewCollector() *Collector {
	return &Collector{}
}

// Record 记录一次决策结果
//
// 无论保留还是丢弃，seen 都递增；仅保留时 kept 递增。
// 非法严重级别（畸形事件 fail open 时可能出现）不计入，
// 避免越界访问——畸形事件由决策器的 OnMalformed 回调单独观测。
func (c *Collector) Record(sev xevent.Severity, kept bool) {
	if !sev.Valid() {
		return
	}
	counter := &c.counters[sev]
	counter.seen.Add(1)
	if kept {
		counter.kept.Add(1)
	}
}

// Seen 返回指定级别的 seen 计数，非法级别返回 0。
func (c *Collector) Seen(sev xevent.Severity) uint64 {
	if !sev.Valid() {
		return 0
	}
	return c.counters[sev].seen.Load()
}

// Kept 返回指定级别的 kept 计数，非法级别返回 0。
func (c *Collector) Kept(sev xevent.Severity) uint64 {
	if !sev.Valid() {
		return 0
	}
	return c.counters[sev].kept.Load()
}

// Count 单个严重级别的计数快照。
type Count struct {
	Seen uint64
	Kept uint64
}

// KeptRate 返回实际保留率 kept/seen，seen 为 0 时返回 0。
func (ct Count) KeptRate() float64 {
	if ct.Seen == 0 {
		return 0
	}
	return float64(ct.Kept) / float64(ct.Seen)
}

// Snapshot 全部级别的计数快照
//
// 快照内各级别的计数分别原子读取，级别之间不保证同一时刻——
// 聚合观测场景下最终一致即可。
type Snapshot struct {
	Counts [xevent.NumSeverities]Count
}

// BySeverity 返回指定级别的计数，非法级别返回零值。
func (s Snapshot) BySeverity(sev xevent.Severity) Count {
	if !sev.Valid() {
		return Count{}
	}
	return s.Counts[sev]
}

// Snapshot 读取当前计数快照。
func (c *Collector) Snapshot() Snapshot {
	var snap Snapshot
	for i := range c.counters {
		snap.Counts[i] = Count{
			Seen: c.counters[i].seen.Load(),
			Kept: c.counters[i].kept.Load(),
		}
	}
	return snap
}

// Reset 将所有计数器清零
//
// 仅用于测试和 CLI 模拟场景。与并发 Record 交错时，
// 单个级别内 seen/kept 可能短暂不满足 seen >= kept 的聚合关系。
func (c *Collector) Reset() {
	for i := range c.counters {
		c.counters[i].seen.Store(0)
		c.counters[i].kept.Store(0)
	}
}
