package game

// Timer 是一次性延迟回调的句柄
//
// 持有者可以在回调触发前调用 Cancel() 取消。已取消或已触发的
// Timer 不会再次执行，重复 Cancel 是无害的。
type Timer struct {
	deadline  float64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel 取消尚未触发的回调
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// TimerQueue 管理基于会话时钟的延迟回调
//
// 队列不依赖真实时间：每帧由外部以当前会话时间驱动 Update，
// 到期的回调在 Update 内同步执行。这样逻辑时间可以在测试中
// 任意推进，也不受暂停或掉帧影响。
type TimerQueue struct {
	timers []*Timer
}

// NewTimerQueue 创建空的延迟回调队列
func NewTimerQueue() *TimerQueue {
	return &TimerQueue{}
}

// Schedule 注册一个在 deadline（会话时间，秒）触发的回调
// 返回的句柄可用于提前取消
func (q *TimerQueue) Schedule(deadline float64, fn func()) *Timer {
	t := &Timer{deadline: deadline, fn: fn}
	q.timers = append(q.timers, t)
	return t
}

// Update 按当前会话时间触发所有到期回调并移除已完成项
//
// 先收集到期项再依次执行，因此回调中取消其他到期回调依然生效。
// 回调中再次 Schedule 的新回调最早在下一次 Update 时才会被检查，
// 避免同帧级联触发。
func (q *TimerQueue) Update(now float64) {
	var due []*Timer
	kept := q.timers[:0]
	for _, t := range q.timers {
		if t.cancelled || t.fired {
			continue
		}
		if now >= t.deadline {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	q.timers = kept

	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.fired = true
		t.fn()
	}
}

// CancelAll 取消所有未触发的回调
func (q *TimerQueue) CancelAll() {
	for _, t := range q.timers {
		t.cancelled = true
	}
	q.timers = q.timers[:0]
}

// PendingCount 返回尚未触发且未取消的回调数量
func (q *TimerQueue) PendingCount() int {
	count := 0
	for _, t := range q.timers {
		if !t.cancelled && !t.fired {
			count++
		}
	}
	return count
}
