package core

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type MemoryRecorder struct {
	caseMap    map[string]*CaseData
	recordChan <-chan *CaseData
	mu         sync.RWMutex
}

func (d *MemoryRecorder) Setup(rc RecordChan, c *Conf) error {
	d.caseMap = make(map[string]*CaseData)
	d.recordChan = rc
	go func() {
		for {
			cd := <-d.recordChan
			if cd == nil { //when recordChan is closed
				return
			}
			zap.L().Debug(fmt.Sprintf("[MemoryRecorder] Received %s", cd.ID))
			if err := d.Update(cd); err != nil {
				zap.L().Error(fmt.Sprintf("failed to update a case(%s). Reason:%s",
					cd.ID, err.Error()))
			}
		}
	}()
	return nil
}

func (d *MemoryRecorder) Insert(cd *CaseData) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caseMap[cd.ID] = cd
	return nil
}

func (d *MemoryRecorder) Get(caseID string) (*CaseData, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if val, ok := d.caseMap[caseID]; ok {
		return val, nil
	}
	err := fmt.Errorf("not found %s", caseID)
	zap.L().Info("[MemoryRecorder]", zap.Field(zap.Error(err)))
	return &CaseData{}, err
}

func (d *MemoryRecorder) Update(cd *CaseData) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caseMap[cd.ID] = cd
	return nil
}

func (d *MemoryRecorder) Delete(caseID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.caseMap[caseID]; ok {
		delete(d.caseMap, caseID)
		zap.L().Info(fmt.Sprintf("[MemoryRecorder] deleted %s", caseID))
		return nil
	}
	err := fmt.Errorf("failed to find %s", caseID)
	zap.L().Info("[MemoryRecorder]", zap.Field(zap.Error(err)))
	return err
}

func (d *MemoryRecorder) All() []*CaseData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cases := make([]*CaseData, 0, len(d.caseMap))
	for _, cd := range d.caseMap {
		cases = append(cases, cd)
	}
	return cases
}
