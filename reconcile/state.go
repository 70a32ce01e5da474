package reconcile

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/appmesh"
	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
)

// State is the logical state of the remote virtual service, derived from a
// describe response.
type State int

// States.
const (
	// StateUnknown means describe returned a status literal this package
	// does not recognize. The reconciler treats it as fatal; the deletion
	// waiter retries it, since only absence is awaited there.
	StateUnknown State = iota

	// StateActive and StateInactive mean the resource exists.
	StateActive
	StateInactive

	// StateDeleted means the remote API still answers for the name but the
	// resource is tombstoned. Terminal-absent for deletion, re-creatable
	// for creation.
	StateDeleted

	// StateMissing means the resource does not exist: describe failed with
	// a not-found signal.
	StateMissing
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateInactive:
		return "INACTIVE"
	case StateDeleted:
		return "DELETED"
	case StateMissing:
		return "MISSING"
	}
	return "UNKNOWN"
}

// Absent reports whether the state is terminal-absent.
func (s State) Absent() bool {
	return s == StateMissing || s == StateDeleted
}

// ClassifyDescribe interprets the outcome of a describe call. A not-found
// error becomes StateMissing. Any other error is classified and returned.
// A successful response missing the expected payload shape is an
// AmbiguousState error, not a state.
func ClassifyDescribe(out *appmesh.DescribeVirtualServiceOutput, err error) (State, error) {
	if err != nil {
		cerr := classifyRemote(err)
		if KindOf(cerr) == NotFound {
			return StateMissing, nil
		}
		return StateUnknown, cerr
	}

	if out == nil || out.VirtualService == nil || out.VirtualService.Status == nil {
		return StateUnknown, &Error{
			Kind: AmbiguousState,
			Msg:  "describe response is missing the virtual service status",
		}
	}

	switch out.VirtualService.Status.Status {
	case types.VirtualServiceStatusCodeActive:
		return StateActive, nil
	case types.VirtualServiceStatusCodeInactive:
		return StateInactive, nil
	case types.VirtualServiceStatusCodeDeleted:
		return StateDeleted, nil
	}
	return StateUnknown, nil
}

// unrecognizedStatus is the fatal form of StateUnknown, for call sites that
// need a definite state.
func unrecognizedStatus(vs *types.VirtualServiceData) error {
	status := types.VirtualServiceStatusCode("")
	if vs != nil && vs.Status != nil {
		status = vs.Status.Status
	}
	return &Error{
		Kind: AmbiguousState,
		Msg:  fmt.Sprintf("virtual service is in unrecognized status %q", status),
	}
}
