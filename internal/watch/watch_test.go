package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchSaveBurstRebuildsOnce(t *testing.T) {
	dir := t.TempDir()

	var rebuilds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, func(context.Context) error {
			rebuilds.Add(1)
			return nil
		})
	}()

	// 等 watcher 挂上目录
	time.Sleep(100 * time.Millisecond)

	// 编辑器保存往往是一小串事件
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte("draft text"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	// debounce 窗口远小于这个等待；计时器要是复燃，这里会数出一串
	time.Sleep(1 * time.Second)
	if got := rebuilds.Load(); got != 1 {
		t.Fatalf("save burst triggered %d rebuilds, want 1", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch: %v", err)
	}
}
