// Package xpolicyconf 是采样策略的配置协作方：加载、编译、校验、热更新。
//
// # 策略文件
//
// 支持 YAML 与 JSON（按扩展名自动识别），示例：
//
//	always_keep: [ERROR, FATAL]
//	rates:
//	  FATAL: 1.0
//	  ERROR: 1.0
//	  WARN: 0.5
//	  INFO: 0.1
//	  DEBUG: 0.01
//	  TRACE: 0.0
//	rules:
//	  - name: health-probes
//	    match:
//	      endpoint: /health
//	    fraction: 0.001
//	  - name: internal-endpoints
//	    match_prefix:
//	      endpoint: /internal/
//	    fraction: 0.01
//	load_factor: 1.0
//
// 规则按声明顺序求值，首个匹配生效。match 是标签精确匹配，
// match_prefix 是标签前缀匹配，两者并存时须同时满足。
// load_factor 缺省为 1.0（不缩减）。
//
// # 校验先于安装
//
// Load/LoadBytes 返回的策略已通过 xpolicy.Validate——
// 非法策略在加载阶段即被拒绝，永远不会到达决策器。
//
// # 热更新
//
// Watch 基于 fsnotify 监视策略文件，变更经防抖后重新加载、校验，
// 校验通过才调用 Decider.UpdatePolicy 原子替换快照；
// 加载或校验失败时通过回调上报错误，决策器继续在旧策略下运行。
package xpolicyconf
