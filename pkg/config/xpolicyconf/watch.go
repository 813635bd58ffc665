package xpolicyconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/xsample/pkg/sampling/xdecider"
	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
)

// ReloadCallback 策略变更回调函数
//
// 热更新每次尝试后调用：成功时 policy 为已安装的新策略、err 为 nil；
// 加载或校验失败时 policy 为 nil、err 说明原因，此时决策器
// 继续在上一个合法策略下运行。
type ReloadCallback func(policy *xpolicy.Policy, err error)

// Watcher 策略文件监视器
// 监控策略文件变更，校验通过后原子安装到决策器
type Watcher struct {
	path     string
	decider  *xdecider.Decider
	watcher  *fsnotify.Watcher
	callback ReloadCallback
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer // debounce 定时器，Stop() 时需要取消
}

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

func defaultWatchOptions() *watchOptions {
	return &watchOptions{
		debounce: 100 * time.Millisecond, // 默认防抖时间
	}
}

// WithDebounce 设置防抖时间
// 在指定时间内的多次变更只触发一次重载
// 默认值为 100ms，适合大多数场景
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.debounce = d
	}
}

// Watch 创建策略文件监视器
//
// 监控策略文件变更并自动重载：加载 → 校验 → UpdatePolicy 原子安装。
// 非法策略不会被安装，决策器继续在上一个合法策略下运行，
// 错误通过 callback 上报。
//
// 返回的 Watcher 需要调用 Start()/StartAsync() 开始监视，Stop() 停止。
//
// 示例:
//
//	d, _ := xdecider.New(policy)
//	w, err := xpolicyconf.Watch("/etc/app/sampling.yaml", d,
//	    func(p *xpolicy.Policy, err error) {
//	        if err != nil {
//	            log.Printf("policy reload rejected: %v", err)
//	            return
//	        }
//	        log.Println("policy reloaded")
//	    })
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//	w.StartAsync()
func Watch(path string, decider *xdecider.Decider, callback ReloadCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if decider == nil {
		return nil, ErrNilDecider
	}
	if _, err := detectFormat(path); err != nil {
		return nil, err
	}

	// 应用选项
	options := defaultWatchOptions()
	for _, opt := range opts {
		opt(options)
	}

	// 创建 fsnotify watcher
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xpolicyconf: failed to create watcher: %w", err)
	}

	// 监视策略文件所在目录（而非文件本身）
	// 因为编辑器保存文件时可能先删除再创建，直接监视文件会丢失事件
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xpolicyconf: failed to watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     path,
		decider:  decider,
		watcher:  fsWatcher,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 启动监视
// 此方法会阻塞，通常应在 goroutine 中调用
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.run()
}

// StartAsync 异步启动监视
// 在后台 goroutine 中运行，立即返回
// 解决与 Stop() 的竞态：先设置 running 标志再启动 goroutine
func (w *Watcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	// 停止 debounce 定时器，防止 Stop 后仍触发回调
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

// run 运行监视循环
func (w *Watcher) run() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.handleError(err)
		}
	}
}

// handleEvent 处理文件系统事件
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	// 只处理目标策略文件的事件
	if filepath.Base(event.Name) != filename {
		return
	}

	// 处理可能表示策略更新的事件
	// - Write: 直接修改
	// - Create: 新建文件（部分编辑器）
	// - Rename: 原子写入模式（vim/emacs 写临时文件后 rename）
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// 防抖处理：重置计时器
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		// 检查 watcher 是否已停止
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		w.reload()
	})
}

// reload 加载、校验并安装策略，结果通过回调上报。
func (w *Watcher) reload() {
	policy, err := Load(w.path)
	if err == nil {
		err = w.decider.UpdatePolicy(policy)
	}
	if err != nil {
		policy = nil
	}
	if w.callback != nil {
		w.callback(policy, err)
	}
}

// handleError 处理 watcher 错误
func (w *Watcher) handleError(err error) {
	if w.callback != nil {
		w.callback(nil, fmt.Errorf("xpolicyconf: watch error: %w", err))
	}
}
