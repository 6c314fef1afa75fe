package badger

import (
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// ErrCloseTimeout 关闭引擎超时
var ErrCloseTimeout = errors.New("badger engine close timeout")

const (
	defaultGCInterval = time.Minute * 5 // 默认GC间隔
	gcDiscardRatio    = 0.5             // value log 可回收比例
)

// closeTimeout 等待GC协程退出的超时时间
var closeTimeout = time.Second * 5

// Engine badger引擎
type Engine struct {
	db  *badger.DB     // badgerDB
	log zerolog.Logger // 日志

	gcInterval   time.Duration      // GC间隔时间
	gcUpdateChan chan time.Duration // GC更新间隔时间信号

	done      chan struct{} // 退出信号
	stopped   chan struct{} // GC协程退出信号
	closeOnce sync.Once
	err       error // 关闭时的错误
}

// Option 引擎配置项
type Option func(*Engine)

// WithLogger 设置日志, 同时接管badger内部日志
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithGCInterval 设置GC间隔
func WithGCInterval(interval time.Duration) Option {
	return func(e *Engine) {
		if interval > 0 {
			e.gcInterval = interval
		}
	}
}

// New 创建一个badger引擎
func New(opt badger.Options, opts ...Option) (*Engine, error) {
	return open(opt, opts...)
}

// Default 创建一个默认的badger引擎
func Default(path string, opts ...Option) (*Engine, error) {
	return open(badger.DefaultOptions(path), opts...)
}

// Memory 创建一个内存模式的badger引擎, 关闭后数据丢失
func Memory(opts ...Option) (*Engine, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts...)
}

// open 创建一个badger引擎
func open(opt badger.Options, opts ...Option) (*Engine, error) {
	be := &Engine{
		log: zerolog.Nop(),

		gcInterval:   defaultGCInterval,
		gcUpdateChan: make(chan time.Duration),

		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, o := range opts {
		o(be)
	}

	db, err := badger.Open(opt.WithLogger(&logger{log: be.log}))
	if err != nil {
		return nil, err
	}
	be.db = db
	be.log.Debug().Str("dir", opt.Dir).Bool("in_memory", opt.InMemory).Msg("badger engine opened")

	go be.listenerGC()
	return be, nil
}

// DB 获取badger数据库
func (e *Engine) DB() *badger.DB { return e.db }

// listenerGC 监听GC信号, 收到退出信号后结束
func (e *Engine) listenerGC() {
	defer close(e.stopped)

	ticker := time.NewTicker(e.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.runGC()
		case interval := <-e.gcUpdateChan:
			e.gcInterval = interval
			ticker.Reset(interval)
			e.log.Debug().Dur("interval", interval).Msg("badger gc interval updated")
		}
	}
}

// runGC 执行一次value log GC
func (e *Engine) runGC() {
	err := e.db.RunValueLogGC(gcDiscardRatio)
	switch {
	case err == nil:
		e.log.Debug().Msg("badger value log gc rewrote a file")
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
	default:
		e.log.Warn().Err(err).Msg("badger value log gc failed")
	}
}

// Close 关闭badger引擎, 重复调用返回第一次的结果
// GC协程超时未退出时仍关闭数据库, 返回的错误包含 ErrCloseTimeout
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
		var timeout error
		select {
		case <-e.stopped:
		case <-time.After(closeTimeout):
			timeout = ErrCloseTimeout
			e.log.Warn().Dur("timeout", closeTimeout).Msg("badger gc did not stop in time, closing db anyway")
		}
		e.err = errors.Join(timeout, e.db.Close())
		e.log.Debug().Err(e.err).Msg("badger engine closed")
	})
	return e.err
}

// SetGCInterval 设置GC间隔
func (e *Engine) SetGCInterval(interval time.Duration) {
	if 0 >= interval {
		return
	}
	select {
	case e.gcUpdateChan <- interval:
	case <-e.done:
	}
}

// logger 将badger内部日志转接到zerolog
type logger struct {
	log zerolog.Logger
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.log.Error().Str("component", "badger").Msgf(format, args...)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Str("component", "badger").Msgf(format, args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.log.Debug().Str("component", "badger").Msgf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Str("component", "badger").Msgf(format, args...)
}
