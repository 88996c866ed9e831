// Package watch reruns a fetch-and-render task on a cron schedule until the
// context is cancelled.
package watch

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Loop drives the periodic refresh of the price command's --watch mode.
type Loop struct {
	cron *cron.Cron
	task func()
	ctx  context.Context
}

// New validates the 6-field cron spec (seconds enabled) and registers the
// task.
func New(ctx context.Context, spec string, task func()) (*Loop, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, task); err != nil {
		return nil, fmt.Errorf("register watch task %q: %w", spec, err)
	}
	return &Loop{cron: c, task: task, ctx: ctx}, nil
}

// Run executes the task once immediately, then on every cron tick until the
// context is done.
func (l *Loop) Run() {
	l.task()
	l.cron.Start()
	log.Println("[INFO] watch loop started")
	<-l.ctx.Done()
	<-l.cron.Stop().Done()
	log.Println("[INFO] watch loop stopped")
}
