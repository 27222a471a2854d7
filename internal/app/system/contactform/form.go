// Package contactform holds the state of one visitor's contact form and
// drives its submit state machine.
//
// A Form moves idle -> submitting -> success|error. Reset returns a
// successful form to idle. An errored form keeps its input and may be
// submitted again. While a submission is in flight every further Submit
// returns ErrInFlight without touching the relay.
package contactform

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
)

// Status is the submission state of a Form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Visitor-facing messages.
const (
	MsgInvalidEmail = "Please enter a valid email address."
	MsgEmptyMessage = "Please enter a message."
	MsgSent         = "Thank you! Your message has been sent."
	MsgFailed       = "Something went wrong. Please try again."
)

var (
	// ErrInFlight is returned by Submit while another submission is running.
	ErrInFlight = errors.New("submission already in flight")
	// ErrInvalid is returned by Submit when a field fails validation.
	ErrInvalid = errors.New("contact form has invalid fields")
	// ErrNotIdle is returned by Submit after a successful send; only Reset
	// makes the form usable again.
	ErrNotIdle = errors.New("contact form already sent; reset first")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether s is empty or shaped like local@domain.tld.
func ValidateEmail(s string) bool {
	return s == "" || emailPattern.MatchString(s)
}

// Relay sends one submission. *formrelay.Client satisfies it.
type Relay interface {
	Send(ctx context.Context, s formrelay.Submission) error
}

// RelayFunc adapts a function to Relay.
type RelayFunc func(ctx context.Context, s formrelay.Submission) error

func (f RelayFunc) Send(ctx context.Context, s formrelay.Submission) error { return f(ctx, s) }

// Snapshot is a copy of a Form's state, safe to render or encode.
type Snapshot struct {
	Email           string `json:"email"`
	Message         string `json:"message"`
	EmailError      string `json:"emailError,omitempty"`
	MessageError    string `json:"messageError,omitempty"`
	Status          Status `json:"status"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

// Submitting reports whether the submit button should be disabled.
func (s Snapshot) Submitting() bool { return s.Status == StatusSubmitting }

// Form is one visitor's contact form. The zero value is an idle, empty form.
type Form struct {
	mu sync.Mutex

	email           string
	message         string
	emailError      string
	messageError    string
	status          Status
	responseMessage string

	touched time.Time
}

// New returns an idle form.
func New() *Form {
	return &Form{status: StatusIdle, touched: time.Now()}
}

// UpdateEmail sets the email and recomputes its error. Ignored while
// submitting and after success, when the inputs are not shown.
func (f *Form) UpdateEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.editableLocked() {
		return
	}
	f.email = v
	if ValidateEmail(v) {
		f.emailError = ""
	} else {
		f.emailError = MsgInvalidEmail
	}
	f.touched = time.Now()
}

// UpdateMessage sets the message and recomputes its error. Ignored while
// submitting and after success.
func (f *Form) UpdateMessage(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.editableLocked() {
		return
	}
	f.message = v
	if strings.TrimSpace(v) == "" {
		f.messageError = MsgEmptyMessage
	} else {
		f.messageError = ""
	}
	f.touched = time.Now()
}

// Submit validates the form and, when valid, makes exactly one relay call.
// It runs from idle or error; a sent form returns ErrNotIdle until Reset.
//
// Validation failures set the field errors and return ErrInvalid with the
// status unchanged. A relay failure leaves the form in StatusError with its
// input kept and returns the relay's error for logging; the visitor only ever
// sees MsgFailed. The lock is not held during the relay call.
func (f *Form) Submit(ctx context.Context, relay Relay) error {
	f.mu.Lock()
	switch f.statusLocked() {
	case StatusSubmitting:
		f.mu.Unlock()
		return ErrInFlight
	case StatusSuccess:
		f.mu.Unlock()
		return ErrNotIdle
	}

	valid := true
	if f.email == "" || !ValidateEmail(f.email) {
		f.emailError = MsgInvalidEmail
		valid = false
	}
	if strings.TrimSpace(f.message) == "" {
		f.messageError = MsgEmptyMessage
		valid = false
	}
	if !valid {
		f.touched = time.Now()
		f.mu.Unlock()
		return ErrInvalid
	}

	f.status = StatusSubmitting
	f.responseMessage = ""
	sub := formrelay.Submission{Email: f.email, Message: f.message}
	f.touched = time.Now()
	f.mu.Unlock()

	err := relay.Send(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()
	if err != nil {
		f.status = StatusError
		f.responseMessage = MsgFailed
		return err
	}
	f.status = StatusSuccess
	f.responseMessage = MsgSent
	f.email = ""
	f.message = ""
	return nil
}

// Reset returns a successful form to idle. It does nothing in any other state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusLocked() != StatusSuccess {
		return
	}
	f.status = StatusIdle
	f.responseMessage = ""
	f.touched = time.Now()
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		Email:           f.email,
		Message:         f.message,
		EmailError:      f.emailError,
		MessageError:    f.messageError,
		Status:          f.statusLocked(),
		ResponseMessage: f.responseMessage,
	}
}

// Status returns the current status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusLocked()
}

// idleSince reports when the form was last changed and whether it may be evicted.
func (f *Form) idleSince() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched, f.statusLocked() != StatusSubmitting
}

func (f *Form) statusLocked() Status {
	if f.status == "" {
		return StatusIdle
	}
	return f.status
}

// editableLocked reports whether the inputs accept changes.
func (f *Form) editableLocked() bool {
	st := f.statusLocked()
	return st == StatusIdle || st == StatusError
}
