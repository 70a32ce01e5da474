package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Kind labels the failure modes that can cross the package boundary. The set
// is closed; callers switch on it rather than inspecting error strings.
type Kind int

// Error kinds.
const (
	// NotFound is returned by the remote API when the virtual service does
	// not exist. It is expected during reconciliation and deletion polling
	// and is reclassified into StateMissing there.
	NotFound Kind = iota + 1

	// InputError marks malformed caller input, such as an invalid JSON
	// payload. No remote call has been made when it is raised.
	InputError

	// AmbiguousState marks a describe response that succeeded but cannot be
	// interpreted: a malformed payload or an unrecognized status literal.
	// Acting on it could create a duplicate resource, so it is never retried.
	AmbiguousState

	// RemoteError is any other failure from the remote API: auth, transport,
	// validation, throttling.
	RemoteError

	// Timeout means the deletion waiter exhausted its wait budget before the
	// resource became absent.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case InputError:
		return "input error"
	case AmbiguousState:
		return "ambiguous state"
	case RemoteError:
		return "remote error"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// Error is a classified failure. StatusCode carries the transport HTTP status
// when one was observed, 0 otherwise.
type Error struct {
	Kind       Kind
	StatusCode int
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		if e.Msg != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (http %d)", e.StatusCode)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind attached to err, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// classifyRemote tags an error returned by the App Mesh API. Classification
// happens here once; everything downstream switches on the kind.
func classifyRemote(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		// Already classified.
		return err
	}

	status := 0
	var re *smithyhttp.ResponseError
	if errors.As(err, &re) {
		status = re.HTTPStatusCode()
	}

	var nf *types.NotFoundException
	if errors.As(err, &nf) {
		return &Error{Kind: NotFound, StatusCode: status, Msg: "virtual service not found", Err: err}
	}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		return &Error{Kind: RemoteError, StatusCode: status, Msg: ae.ErrorCode(), Err: err}
	}
	return &Error{Kind: RemoteError, StatusCode: status, Err: err}
}
