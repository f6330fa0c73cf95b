package faults

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the engine surfaces. Validation failures are
// produced before any network call and are never retried. Transport failures
// leave state unchanged and are safe to retry. Rejected failures carry the
// server's verdict verbatim. Integrity faults mean the server response broke
// an invariant the client relies on.
type Kind int

const (
	Validation Kind = iota + 1
	Transport
	Rejected
	Integrity
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	case Rejected:
		return "rejected"
	case Integrity:
		return "integrity"
	}
	return "unknown"
}

// Stage tags a failure with the submission pipeline stage that produced it.
type Stage string

const (
	StageValidate Stage = "validation"
	StageUpload   Stage = "upload"
	StageSubmit   Stage = "submission"
)

type Fault struct {
	Kind    Kind
	Stage   Stage // set only by the submission pipeline
	Status  int   // HTTP status for Rejected
	Message string
	Err     error
}

func (f *Fault) Error() string {
	msg := f.Message
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	}
	if f.Stage != "" {
		return fmt.Sprintf("%s: %s: %s", f.Stage, f.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", f.Kind, msg)
}

func (f *Fault) Unwrap() error { return f.Err }

func Validationf(format string, args ...any) *Fault {
	return &Fault{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func Transportf(err error, format string, args ...any) *Fault {
	return &Fault{Kind: Transport, Message: fmt.Sprintf(format, args...), Err: err}
}

func Rejectedf(status int, format string, args ...any) *Fault {
	return &Fault{Kind: Rejected, Status: status, Message: fmt.Sprintf(format, args...)}
}

func Integrityf(format string, args ...any) *Fault {
	return &Fault{Kind: Integrity, Message: fmt.Sprintf(format, args...)}
}

// WithStage returns err tagged with the given pipeline stage. Faults keep
// their kind; anything else is wrapped as a transport failure.
func WithStage(err error, stage Stage) error {
	var f *Fault
	if errors.As(err, &f) {
		tagged := *f
		tagged.Stage = stage
		return &tagged
	}
	return &Fault{Kind: Transport, Stage: stage, Err: err}
}

// KindOf reports the fault kind of err, or 0 if err is not a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// StageOf reports the pipeline stage tag of err, or "" if untagged.
func StageOf(err error) Stage {
	var f *Fault
	if errors.As(err, &f) {
		return f.Stage
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == Validation }
func IsTransport(err error) bool  { return KindOf(err) == Transport }
func IsRejected(err error) bool   { return KindOf(err) == Rejected }
func IsIntegrity(err error) bool  { return KindOf(err) == Integrity }
