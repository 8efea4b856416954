package observable

import (
	"errors"
	"sync"
)

// Observable fans one source channel out to any number of subscribers.
// Slow subscribers fall behind on their own buffer, never stalling the
// source consumer itself beyond the buffer size.
type Observable[T any] struct {
	iterable <-chan T
	listener map[Subscription[T]]*Subscriber[T]
	mux      sync.Mutex
	done     bool
}

func NewObservable[T any](v <-chan T) *Observable[T] {
	observable := &Observable[T]{
		iterable: v,
		listener: map[Subscription[T]]*Subscriber[T]{},
	}
	go observable.process()
	return observable
}

func (o *Observable[T]) process() {
	for item := range o.iterable {
		o.mux.Lock()
		for _, sub := range o.listener {
			sub.Emit(item)
		}
		o.mux.Unlock()
	}

	o.mux.Lock()
	defer o.mux.Unlock()
	for _, sub := range o.listener {
		sub.Close()
	}
	o.listener = nil
	o.done = true
}

func (o *Observable[T]) Subscribe() (Subscription[T], error) {
	o.mux.Lock()
	defer o.mux.Unlock()
	if o.done {
		return nil, errors.New("observable is closed")
	}
	subscriber := newSubscriber[T]()
	o.listener[subscriber.Out()] = subscriber
	return subscriber.Out(), nil
}

func (o *Observable[T]) UnSubscribe(sub Subscription[T]) {
	o.mux.Lock()
	defer o.mux.Unlock()
	subscriber, exist := o.listener[sub]
	if !exist {
		return
	}
	delete(o.listener, sub)
	subscriber.Close()
}
