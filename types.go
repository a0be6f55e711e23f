package ffilog

import "time"

// Record is one emitted log record. It only lives for the duration of a
// single delivery; adapters must not retain Fields past Log.
type Record struct {
	At      time.Time
	Level   Level
	Target  string
	Message string
	Fields  []Field
}

// Observer is notified for each record that passed the level filter,
// after the adapter has seen it. Implementations MUST be concurrency-safe.
type Observer interface {
	OnLog(r Record)
}

// ObserverFunc adapter.
type ObserverFunc func(Record)

func (f ObserverFunc) OnLog(r Record) { f(r) }
