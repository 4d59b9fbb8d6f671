// Package sched runs the three appliance tasks under either of two
// interchangeable models: goroutine-per-task or a single round-robin
// loop gated by a clock.
package sched

import (
	"context"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/ckos/ckos/helpers"
	"github.com/ckos/ckos/internal/types"
	"github.com/ckos/ckos/log2"
)

// Task is one periodic unit of work. Fn runs to completion every
// Interval, errors stop the runner.
type Task struct {
	Name     string
	Interval time.Duration
	Fn       types.TaskFunc
}

// Default cadences: hardware 10Hz, logic 60Hz, display 30Hz.
const (
	HardwareInterval = 100 * time.Millisecond
	LogicInterval    = 16 * time.Millisecond
	DisplayInterval  = 33 * time.Millisecond
)

// Threads runs every task on its own goroutine with a fixed-delay
// sleep between iterations. Stop via alive or context cancel.
type Threads struct {
	Log   *log2.Log
	Alive *alive.Alive
}

func NewThreads(log *log2.Log) *Threads {
	return &Threads{Log: log, Alive: alive.NewAlive()}
}

// Run blocks until a task fails, the context cancels, or Stop is
// called. Any task error stops the rest, errors are folded.
func (self *Threads) Run(ctx context.Context, tasks []Task) error {
	wg := sync.WaitGroup{}
	errch := make(chan error, len(tasks))

	go func() {
		select {
		case <-ctx.Done():
			self.Alive.Stop()
		case <-self.Alive.StopChan():
		}
	}()

	for i := range tasks {
		if !self.Alive.Add(1) {
			break
		}
		task := tasks[i]
		wg.Add(1)
		go helpers.WrapErrChan(&wg, errch, func() error {
			defer self.Alive.Done()
			err := self.loop(ctx, task)
			if err != nil {
				self.Alive.Stop()
			}
			return err
		})
	}

	wg.Wait()
	self.Alive.Wait()
	close(errch)
	return helpers.FoldErrChan(errch)
}

func (self *Threads) Stop() { self.Alive.Stop() }

func (self *Threads) loop(ctx context.Context, task Task) error {
	self.Log.Debugf("sched task=%s interval=%v start", task.Name, task.Interval)
	stopch := self.Alive.StopChan()
	tmr := time.NewTimer(task.Interval)
	defer tmr.Stop()

	for {
		if err := task.Fn(ctx); err != nil {
			return errors.Annotatef(err, "sched task=%s", task.Name)
		}
		tmr.Reset(task.Interval)
		select {
		case <-tmr.C:
		case <-stopch:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// RoundRobin invokes the same tasks from one loop, each gated by its
// own elapsed-time check against the supplied clock. With a mock
// clock the schedule is fully deterministic.
type RoundRobin struct {
	Log   *log2.Log
	Clock types.Clock

	tasks   []Task
	nextDue []uint32
}

func NewRoundRobin(log *log2.Log, clock types.Clock, tasks []Task) *RoundRobin {
	self := &RoundRobin{
		Log:     log,
		Clock:   clock,
		tasks:   tasks,
		nextDue: make([]uint32, len(tasks)),
	}
	now := clock.TickMs()
	for i := range self.nextDue {
		self.nextDue[i] = now
	}
	return self
}

// Step runs every task whose interval elapsed, in declaration order,
// and reports how many ran. One call never runs a task twice.
func (self *RoundRobin) Step(ctx context.Context) (int, error) {
	now := self.Clock.TickMs()
	ran := 0
	for i := range self.tasks {
		if int32(now-self.nextDue[i]) < 0 {
			continue
		}
		task := &self.tasks[i]
		if err := task.Fn(ctx); err != nil {
			return ran, errors.Annotatef(err, "sched task=%s", task.Name)
		}
		ran++
		self.nextDue[i] = now + uint32(task.Interval/time.Millisecond)
	}
	return ran, nil
}

// Run steps until the context cancels, sleeping a millisecond between
// passes to keep the loop cooperative on a real clock.
func (self *RoundRobin) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if _, err := self.Step(ctx); err != nil {
			return errors.Trace(err)
		}
		time.Sleep(1 * time.Millisecond)
	}
}
