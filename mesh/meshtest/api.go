// Package meshtest provides a scripted App Mesh API fake for tests.
package meshtest

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appmesh"
	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
)

// DescribeResult scripts the outcome of one describe call.
type DescribeResult struct {
	Out *appmesh.DescribeVirtualServiceOutput
	Err error
}

// An Event records an operation that was invoked.
type Event struct {
	Op    string // describe / create / delete
	Input interface{}
}

// API is a scripted fake. Describe calls consume DescribeResults in order,
// repeating the last one when the script runs out. Create and Delete return
// the configured outputs or errors.
type API struct {
	Describes []DescribeResult

	CreateOut *appmesh.CreateVirtualServiceOutput
	CreateErr error

	DeleteOut *appmesh.DeleteVirtualServiceOutput
	DeleteErr error

	Events []Event

	describeCalls int
}

// DescribeVirtualService returns the next scripted describe result.
func (a *API) DescribeVirtualService(ctx context.Context, params *appmesh.DescribeVirtualServiceInput, optFns ...func(*appmesh.Options)) (*appmesh.DescribeVirtualServiceOutput, error) {
	a.Events = append(a.Events, Event{Op: "describe", Input: params})
	if len(a.Describes) == 0 {
		return nil, errors.New("meshtest: no describe result scripted")
	}
	i := a.describeCalls
	if i >= len(a.Describes) {
		i = len(a.Describes) - 1
	}
	a.describeCalls++
	r := a.Describes[i]
	return r.Out, r.Err
}

// CreateVirtualService returns the configured create result.
func (a *API) CreateVirtualService(ctx context.Context, params *appmesh.CreateVirtualServiceInput, optFns ...func(*appmesh.Options)) (*appmesh.CreateVirtualServiceOutput, error) {
	a.Events = append(a.Events, Event{Op: "create", Input: params})
	return a.CreateOut, a.CreateErr
}

// DeleteVirtualService returns the configured delete result.
func (a *API) DeleteVirtualService(ctx context.Context, params *appmesh.DeleteVirtualServiceInput, optFns ...func(*appmesh.Options)) (*appmesh.DeleteVirtualServiceOutput, error) {
	a.Events = append(a.Events, Event{Op: "delete", Input: params})
	return a.DeleteOut, a.DeleteErr
}

// Calls returns the operation names in invocation order.
func (a *API) Calls() []string {
	ops := make([]string, len(a.Events))
	for i, e := range a.Events {
		ops[i] = e.Op
	}
	return ops
}

// VirtualService builds a minimal payload with the given status and ARN.
func VirtualService(status types.VirtualServiceStatusCode, arn string) *types.VirtualServiceData {
	vs := &types.VirtualServiceData{
		MeshName:           aws.String("test-mesh"),
		VirtualServiceName: aws.String("test-svc"),
		Status: &types.VirtualServiceStatus{
			Status: status,
		},
	}
	if arn != "" {
		vs.Metadata = &types.ResourceMetadata{Arn: aws.String(arn)}
	}
	return vs
}

// Describe wraps a payload into a successful describe result.
func Describe(vs *types.VirtualServiceData) DescribeResult {
	return DescribeResult{Out: &appmesh.DescribeVirtualServiceOutput{VirtualService: vs}}
}

// NotFound is a describe result failing with the API's not-found error.
func NotFound() DescribeResult {
	return DescribeResult{Err: &types.NotFoundException{Message: aws.String("virtual service not found")}}
}
