package oracle

import (
	"fmt"

	conq "github.com/enriquebris/goconcurrentqueue"
	"github.com/qonform-team/qonform/core"
	"go.uber.org/zap"
)

type fifo interface {
	Enqueue(*caseInRun) error
	Dequeue() (*caseInRun, error)
	DequeueOrWaitForNextElement() (*caseInRun, error)
	GetLen() int
}

type conqFIFO struct {
	conq.FIFO
}

func newConqFIFO() *conqFIFO {
	return &conqFIFO{
		FIFO: *conq.NewFIFO(),
	}
}

func (c *conqFIFO) Enqueue(cir *caseInRun) error {
	return c.FIFO.Enqueue(cir)
}

func (c *conqFIFO) Dequeue() (*caseInRun, error) {
	tmp, err := c.FIFO.Dequeue()
	if err != nil {
		return nil, err
	}
	return tmp.(*caseInRun), nil
}

func (c *conqFIFO) DequeueOrWaitForNextElement() (*caseInRun, error) {
	tmp, err := c.FIFO.DequeueOrWaitForNextElement()
	if err != nil {
		return nil, err
	}
	return tmp.(*caseInRun), nil
}

func (c *conqFIFO) GetLen() int {
	return c.FIFO.GetLen()
}

type caseQueue struct {
	fifo    fifo
	maxSize int
}

func (q *caseQueue) Setup(conf *core.Conf) error {
	q.maxSize = conf.QueueMaxSize
	q.fifo = newConqFIFO()
	return nil
}

func (q *caseQueue) Enqueue(cir *caseInRun) error {
	if q.maxSize <= q.fifo.GetLen() {
		msg := fmt.Sprintf("Failed to put %s. Case queue is full.", cir.data.ID)
		zap.L().Info(msg)
		return fmt.Errorf(msg)
	}
	zap.L().Debug(fmt.Sprintf("Putting %s to caseQueue", cir.data.ID))
	if err := q.fifo.Enqueue(cir); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to put %s to caseQueue. Reason:%s", cir.data.ID, err))
		return err
	}
	return nil
}

// wait until the next element gets enqueued
func (q *caseQueue) Dequeue(wait bool) (cir *caseInRun, err error) {
	cir = nil
	err = nil
	if wait {
		cir, err = q.fifo.DequeueOrWaitForNextElement()
	} else {
		cir, err = q.fifo.Dequeue()
	}
	if err != nil {
		zap.L().Debug("no case in caseQueue.", zap.Error(err))
		return
	}
	zap.L().Debug(fmt.Sprintf("Dequeued case:%s", cir.data.ID))
	return
}

func (q *caseQueue) GetCurrentSize() int {
	return q.fifo.GetLen()
}
