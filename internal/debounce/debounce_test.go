package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnlyLastTicketFires(t *testing.T) {
	d := New(time.Second)
	var tickets []Ticket
	for i := 0; i < 5; i++ {
		tk, delay := d.Schedule()
		assert.Equal(t, time.Second, delay)
		tickets = append(tickets, tk)
	}
	assert.Equal(t, Pending, d.State())

	fired := 0
	for _, tk := range tickets {
		if d.Fire(tk) {
			fired++
		}
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, Idle, d.State())
	assert.False(t, d.Fire(tickets[len(tickets)-1]), "ticket fires once")
}

func TestCancel(t *testing.T) {
	d := New(time.Second)
	tk, _ := d.Schedule()
	d.Cancel()
	assert.Equal(t, Idle, d.State())
	assert.False(t, d.Fire(tk))

	d.Cancel()
	assert.Equal(t, Idle, d.State())
}

func TestScheduleAfter(t *testing.T) {
	d := New(time.Second)
	tk, delay := d.ScheduleAfter(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, delay)
	assert.True(t, d.Fire(tk))
}

func TestConcurrentSchedules(t *testing.T) {
	d := New(time.Millisecond)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var tickets []Ticket
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk, _ := d.Schedule()
			mu.Lock()
			tickets = append(tickets, tk)
			mu.Unlock()
		}()
	}
	wg.Wait()
	fired := 0
	for _, tk := range tickets {
		if d.Fire(tk) {
			fired++
		}
	}
	assert.Equal(t, 1, fired)
}
