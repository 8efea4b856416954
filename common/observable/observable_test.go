package observable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeReceivesAll(t *testing.T) {
	ch := make(chan int)
	o := NewObservable[int](ch)
	sub, err := o.Subscribe()
	assert.Nil(t, err)

	go func() {
		for i := 0; i < 5; i++ {
			ch <- i
		}
		close(ch)
	}()

	count := 0
	for range sub {
		count++
	}
	assert.Equal(t, 5, count)
}

func TestUnSubscribeClosesChannel(t *testing.T) {
	ch := make(chan int)
	o := NewObservable[int](ch)
	sub, _ := o.Subscribe()
	o.UnSubscribe(sub)

	_, open := <-sub
	assert.False(t, open)
	close(ch)
}

func TestSubscribeAfterClose(t *testing.T) {
	ch := make(chan int)
	o := NewObservable[int](ch)
	close(ch)
	time.Sleep(10 * time.Millisecond)

	_, err := o.Subscribe()
	assert.NotNil(t, err)
}
