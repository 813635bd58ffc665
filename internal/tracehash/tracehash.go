// Package tracehash 提供 trace ID 到 [0, 1) 区间的确定性归一化。
//
// 归一化值与采样比率比较即得采样决策。xxhash 是确定性哈希，
// 同一 trace ID 在所有进程、所有服务实例中产生相同的归一化值，
// 这保证了同一条分布式链路的所有日志事件获得一致的保留/丢弃结果。
package tracehash

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// Normalize 将 key 确定性地映射到 [0, 1) 区间
//
// 使用 xxhash 零分配哈希后按 uint64 值域归一化。
// 注意：float64 精度有限，极大 uint64 值（约 2^53 以上）的归一化结果
// 可能不精确，且当哈希值为 MaxUint64 时结果可能等于 1.0。
// 调用方在 fraction >= 1 时应提前返回保留，此时 1.0 不会通过
// normalized < fraction 判断，行为仍然正确。
func Normalize(key string) float64 {
	return float64(xxhash.Sum64String(key)) / float64(math.MaxUint64)
}
