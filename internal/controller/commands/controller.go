package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/usecase"
	kafkaconsumer "github.com/inkedmayhem/content-pipeline/pkg/kafka/consumer"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
)

const (
	cmdProcess = "process"
	cmdApprove = "approve"
	cmdReject  = "reject"
	cmdPublish = "publish"
)

// CommandController consumes the chat bot's pipeline commands and
// dispatches them to the state machine. A failing command is logged and
// committed anyway: the bot's operator retries at a human pace, and a
// poisoned message must not wedge the topic.
type CommandController struct {
	pl     usecase.Pipeline
	c      *kafkaconsumer.Consumer
	logger logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	pl usecase.Pipeline,
	c *kafkaconsumer.Consumer,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *CommandController {
	return &CommandController{
		pl:             pl,
		c:              c,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *CommandController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("CommandController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				// 1. read from kafka
				msg, err := c.c.Reader.FetchMessage(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "CommandController - Start - c.c.Reader.FetchMessage")
					}
					continue
				}

				// 2. hand over to a worker
				select {
				case tasks <- msg:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	return nil
}

func (c *CommandController) dispatch(ctx context.Context, msg kafka.Message) error {
	var payload CommandPayload
	err := json.Unmarshal(msg.Value, &payload)
	if err != nil {
		return fmt.Errorf("CommandController - dispatch - json.Unmarshal: %w", err)
	}

	switch payload.Command {
	case cmdProcess:
		_, err = c.pl.Process(ctx, payload.ItemID)
	case cmdApprove:
		_, err = c.pl.Approve(ctx, payload.ItemID, dto.ItemOverrides{Tier: payload.Tier})
	case cmdReject:
		_, err = c.pl.Reject(ctx, payload.ItemID, payload.Reason)
	case cmdPublish:
		_, err = c.pl.Publish(ctx, payload.ItemID)
	default:
		return fmt.Errorf("CommandController - dispatch - unknown command %q", payload.Command)
	}

	if err != nil {
		return fmt.Errorf("CommandController - dispatch - %s: %w", payload.Command, err)
	}

	return nil
}

func (c *CommandController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for msg := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "CommandController - worker - panic")
				}
			}()

			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			err := c.dispatch(processCtx, msg)
			processCancel()
			if err != nil {
				c.logger.Error(err, "CommandController - worker - c.dispatch")
			}

			// commit regardless of outcome
			commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
			err = c.c.Reader.CommitMessages(commitCtx, msg)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "CommandController - worker - c.c.Reader.CommitMessages")
			}
		}()
	}
}

func (c *CommandController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		c.c.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
