package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Task is a scheduled callback. A non-zero Interval re-arms it after every
// firing until it is cancelled.
type Task struct {
	ID       int64
	RunAt    time.Time
	Interval time.Duration
	Fn       func()
	index    int
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].RunAt.Before(q[j].RunAt)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*Task)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Manager fires scheduled tasks from one background goroutine. Callbacks run
// on their own goroutines and may call Cancel, including on their own task.
type Manager struct {
	queue   taskQueue
	mutex   sync.Mutex
	nextID  int64
	trigger chan *Task
	done    chan struct{}
}

func NewManager() *Manager {
	manager := &Manager{
		queue:   make(taskQueue, 0),
		trigger: make(chan *Task, 256),
		nextID:  1,
		done:    make(chan struct{}),
	}
	heap.Init(&manager.queue)
	go manager.run()
	return manager
}

// Schedule arms a task after delay. A non-zero interval makes it repeating.
// Returns the task id for Cancel.
func (m *Manager) Schedule(delay, interval time.Duration, fn func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task := &Task{
		ID:       m.nextID,
		RunAt:    time.Now().Add(delay),
		Interval: interval,
		Fn:       fn,
	}
	m.nextID++

	heap.Push(&m.queue, task)
	return task.ID
}

// Cancel disarms a task. A repeating task stays in the queue between
// firings, so cancelling from its own callback works.
func (m *Manager) Cancel(taskID int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, task := range m.queue {
		if task.ID == taskID {
			heap.Remove(&m.queue, i)
			break
		}
	}
}

// Stop terminates the background goroutine. Pending tasks never fire.
func (m *Manager) Stop() {
	close(m.done)
}

func (m *Manager) run() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return

		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()
			for m.queue.Len() > 0 {
				task := m.queue[0]
				if task.RunAt.After(now) {
					break
				}

				heap.Pop(&m.queue)
				if task.Interval > 0 {
					task.RunAt = now.Add(task.Interval)
					heap.Push(&m.queue, task)
				}
				m.trigger <- task
			}
			m.mutex.Unlock()

		case task := <-m.trigger:
			go task.Fn()
		}
	}
}
