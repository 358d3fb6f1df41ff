// Package safe_close 协调多个组件的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose coordinates goroutines that must observe a close signal and
// report completion before the process exits
// SafeClose 协调需要观察关闭信号并在进程退出前上报完成的协程
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
	doneSignal  chan struct{}
	doneOnce    sync.Once
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
		doneSignal:  make(chan struct{}),
	}
}

// Attach registers a goroutine: f must call done() when finished and
// should stop when closeSignal is closed
// Attach 注册一个协程：f 完成时必须调用 done()，并在 closeSignal 关闭时停止
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(func() { s.wg.Done() }, s.closeSignal)
}

// SendCloseSignal triggers shutdown; the first error wins
// SendCloseSignal 触发关闭；第一个错误会被保留
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until all attached goroutines have finished and
// returns the error that triggered the shutdown, if any
// WaitClosed 阻塞直到所有注册的协程完成，返回触发关闭的错误（如果有）
func (s *SafeClose) WaitClosed() error {
	<-s.closeSignal
	s.doneOnce.Do(func() {
		go func() {
			s.wg.Wait()
			close(s.doneSignal)
		}()
	})
	<-s.doneSignal

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
