package store

import "sync"

// observers список подписчиков на события типа T.
type observers[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// add регистрирует fn и возвращает идемпотентную функцию отписки.
func (o *observers[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *observers[T]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return
		}
	}
}

// snapshot возвращает подписчиков, зарегистрированных на момент вызова.
func (o *observers[T]) snapshot() []func(T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	fns := make([]func(T), len(o.subs))
	for i, s := range o.subs {
		fns[i] = s.fn
	}
	return fns
}
