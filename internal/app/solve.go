package app

import (
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
)

// SolveRequest names the instance either inline or by stored id (or a
// unique id prefix). Empty Encoding and Solver fall back to the service
// defaults.
type SolveRequest struct {
	Instance    *domain.Instance
	InstanceRef string
	Encoding    domain.Encoding
	Solver      string
	Timeout     time.Duration
	Save        bool
	Limit       int // distinct assignments to enumerate; <= 1 means one
}

func NewSolveRequest(inst *domain.Instance) SolveRequest {
	return SolveRequest{Instance: inst, Limit: 1}
}

// ModelStats reports the size of the model that was solved.
type ModelStats struct {
	Items       int
	Positions   int
	Cells       int
	Indicators  int
	Variables   int
	Constraints int
}

type SolveResponse struct {
	Instance       *domain.Instance
	Encoding       domain.Encoding
	Solver         string
	Status         domain.RunStatus
	Assignment     *domain.Assignment
	Alternatives   []*domain.Assignment
	// EnumerationErr is set when the search for alternatives stopped early.
	// Assignment and the alternatives found before it remain valid.
	EnumerationErr error
	Stats          ModelStats
	Duration       time.Duration
	RunID          string
}

// Assignments returns the first assignment followed by any alternatives.
func (r *SolveResponse) Assignments() []*domain.Assignment {
	if r.Assignment == nil {
		return nil
	}
	return append([]*domain.Assignment{r.Assignment}, r.Alternatives...)
}

type ExportRequest struct {
	Instance    *domain.Instance
	InstanceRef string
	Encoding    domain.Encoding
}

type GenerateRequest struct {
	Items     int
	Positions int
	MaxLength int
	Seed      int64
	Save      bool
}

type SolveErrorCode string

const (
	SolveErrInvalidRequest     SolveErrorCode = "INVALID_REQUEST"
	SolveErrAmbiguousReference SolveErrorCode = "AMBIGUOUS_REFERENCE"
	SolveErrUnknownSolver      SolveErrorCode = "UNKNOWN_SOLVER"
)

type SolveError struct {
	Code    SolveErrorCode
	Message string
}

func (e *SolveError) Error() string {
	return string(e.Code) + ": " + e.Message
}
