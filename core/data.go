package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

type CaseStatus int
type ProbVector []float64     // probability per basis state, wire 0 is the most significant bit
type Counts map[string]uint32 // key: bit string, value: count

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	READY   CaseStatus = iota // Has never been sent to the device. All the cases are in this status at first.
	RUNNING                   // Being executed on the device.
	PASSED                    // Finished and the observed probabilities matched the expected ones.
	FAILED                    // Finished with a mismatch or an execution error.
	XFAILED                   // Expected to fail and did fail.
	XPASSED                   // Expected to fail but passed. Counts as a suite failure.
)

func ToCaseStatus(s string) (CaseStatus, error) {
	switch s {
	case "ready":
		return READY, nil
	case "running":
		return RUNNING, nil
	case "passed":
		return PASSED, nil
	case "failed":
		return FAILED, nil
	case "xfailed":
		return XFAILED, nil
	case "xpassed":
		return XPASSED, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", s)
	}
}

func (s CaseStatus) String() string {
	switch s {
	case READY:
		return "ready"
	case RUNNING:
		return "running"
	case PASSED:
		return "passed"
	case FAILED:
		return "failed"
	case XFAILED:
		return "xfailed"
	case XPASSED:
		return "xpassed"
	default:
		return "unknown"
	}
}

func (s CaseStatus) Finished() bool {
	return s == PASSED || s == FAILED || s == XFAILED || s == XPASSED
}

func (p ProbVector) String() string {
	st, err := jsonIter.Marshal(p)
	if err != nil {
		zap.L().Error("Failed to marshal core.ProbVector")
		return ""
	}
	return string(st)
}

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.Counts")
		return ""
	}
	return string(st)
}

// ToProbVector estimates the distribution behind the counts. Basis states
// that were never drawn stay at zero.
func (c Counts) ToProbVector(numQubits, shots int) ProbVector {
	probs := make(ProbVector, 1<<uint(numQubits))
	if shots < 1 {
		return probs
	}
	for bits, n := range c {
		index, err := strconv.ParseUint(bits, 2, 64)
		if err != nil || int(index) >= len(probs) {
			zap.L().Error(fmt.Sprintf("dropping malformed bit string:%s", bits))
			continue
		}
		probs[index] = float64(n) / float64(shots)
	}
	return probs
}

type ExecutionResult struct {
	Probabilities ProbVector    `json:"probabilities"`
	Counts        Counts        `json:"counts"`
	Shots         int           `json:"shots"`
	Message       string        `json:"message"`
	ExecutionTime time.Duration `json:"execution_time"`
}

func NewExecutionResult() *ExecutionResult {
	return &ExecutionResult{
		Probabilities: ProbVector{},
		Counts:        make(Counts),
	}
}

func (r *ExecutionResult) ToString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.ExecutionResult")
		return ""
	}
	st = pretty.Pretty(st)
	return string(st)
}

type CaseData struct {
	ID            string
	Name          string
	GateName      string
	Params        []float64
	Wires         []int
	NumQubits     int
	Shots         int
	Status        CaseStatus
	ExpectFailure bool
	Expected      ProbVector
	Observed      ProbVector
	Result        *ExecutionResult
	Message       string
	QASM          string
	Created       strfmt.DateTime
	Ended         strfmt.DateTime
}

func NewCaseData() *CaseData {
	return &CaseData{
		Status:  READY,
		Result:  NewExecutionResult(),
		Created: strfmt.DateTime(time.Now()),
	}
}

func (cd *CaseData) Clone() *CaseData {
	c := deepcopy.Copy(cd).(*CaseData)
	c.Created = *cd.Created.DeepCopy()
	c.Ended = *cd.Ended.DeepCopy()
	return c
}

func (cd *CaseData) IsFinished() bool {
	return cd.Status.Finished()
}

func (cd *CaseData) Finish(status CaseStatus, message string) {
	cd.Status = status
	cd.Message = message
	cd.Ended = strfmt.DateTime(time.Now())
}

func (cd *CaseData) SetFailure(err error) {
	cd.Finish(FAILED, err.Error())
}

type CaseReport struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	Message  string     `json:"message,omitempty"`
	Expected ProbVector `json:"expected,omitempty"`
	Observed ProbVector `json:"observed,omitempty"`
}

type SuiteReport struct {
	RunID      string          `json:"run_id"`
	DeviceName string          `json:"device_name"`
	Started    strfmt.DateTime `json:"started"`
	Ended      strfmt.DateTime `json:"ended"`
	Total      int             `json:"total"`
	Passed     int             `json:"passed"`
	Failed     int             `json:"failed"`
	XFailed    int             `json:"xfailed"`
	XPassed    int             `json:"xpassed"`
	Cases      []*CaseReport   `json:"cases"`
}

func NewSuiteReport() *SuiteReport {
	return &SuiteReport{
		Started: strfmt.DateTime(time.Now()),
		Cases:   []*CaseReport{},
	}
}

func (r *SuiteReport) AddCase(cd *CaseData) {
	r.Total++
	switch cd.Status {
	case PASSED:
		r.Passed++
	case FAILED:
		r.Failed++
	case XFAILED:
		r.XFailed++
	case XPASSED:
		r.XPassed++
	default:
		zap.L().Error(fmt.Sprintf("case %s is added to the report in unfinished status:%s",
			cd.ID, cd.Status))
		r.Failed++
	}
	cr := &CaseReport{
		ID:      cd.ID,
		Name:    cd.Name,
		Status:  cd.Status.String(),
		Message: cd.Message,
	}
	if cd.Status == FAILED || cd.Status == XPASSED {
		cr.Expected = cd.Expected
		cr.Observed = cd.Observed
	}
	r.Cases = append(r.Cases, cr)
}

// Clean reports whether the suite finished without failures.
// An unexpected pass of a known-to-fail case is a failure as well.
func (r *SuiteReport) Clean() bool {
	return r.Failed == 0 && r.XPassed == 0
}

func (r *SuiteReport) ToString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.SuiteReport")
		return ""
	}
	st = pretty.Pretty(st)
	return string(st)
}
