package reconcile_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appmesh"
	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
	"github.com/aws/smithy-go"
	"github.com/google/go-cmp/cmp"
	"github.com/meshops/meshsvc/mesh/meshtest"
	"github.com/meshops/meshsvc/reconcile"
)

func TestFindOrCreate_exists(t *testing.T) {
	tests := []struct {
		name   string
		status types.VirtualServiceStatusCode
	}{
		{"active", types.VirtualServiceStatusCodeActive},
		{"inactive", types.VirtualServiceStatusCodeInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := meshtest.VirtualService(tt.status, "arn:aws:appmesh::123456789012:mesh/m1/virtualService/svc1")
			api := &meshtest.API{
				Describes: []meshtest.DescribeResult{meshtest.Describe(existing)},
			}

			rec := &reconcile.Reconciler{API: api}
			got, err := rec.FindOrCreate(context.Background(), reconcile.Parameters{
				MeshName:           "m1",
				VirtualServiceName: "svc1",
			})
			if err != nil {
				t.Fatalf("FindOrCreate() err = %v", err)
			}
			if got != existing {
				t.Error("payload was not returned unchanged")
			}
			want := []string{"describe"}
			if diff := cmp.Diff(want, api.Calls()); diff != "" {
				t.Errorf("calls (-want +got)\n%s", diff)
			}
		})
	}
}

func TestFindOrCreate_absent(t *testing.T) {
	tests := []struct {
		name     string
		describe meshtest.DescribeResult
	}{
		{"missing", meshtest.NotFound()},
		{"deleted tombstone", meshtest.Describe(meshtest.VirtualService(types.VirtualServiceStatusCodeDeleted, ""))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := meshtest.VirtualService(types.VirtualServiceStatusCodeActive, "arn:aws:appmesh::123456789012:mesh/m1/virtualService/svc1")
			api := &meshtest.API{
				Describes: []meshtest.DescribeResult{tt.describe},
				CreateOut: &appmesh.CreateVirtualServiceOutput{VirtualService: created},
			}

			rec := &reconcile.Reconciler{API: api}
			got, err := rec.FindOrCreate(context.Background(), reconcile.Parameters{
				MeshName:           "m1",
				VirtualServiceName: "svc1",
			})
			if err != nil {
				t.Fatalf("FindOrCreate() err = %v", err)
			}
			if got != created {
				t.Error("create payload was not returned unchanged")
			}
			want := []string{"describe", "create"}
			if diff := cmp.Diff(want, api.Calls()); diff != "" {
				t.Errorf("calls (-want +got)\n%s", diff)
			}
		})
	}
}

// A pipeline step with only the identity set must create with only the
// identity projected: no spec, no owner, no empty strings.
func TestFindOrCreate_createInput(t *testing.T) {
	api := &meshtest.API{
		Describes: []meshtest.DescribeResult{meshtest.NotFound()},
		CreateOut: &appmesh.CreateVirtualServiceOutput{
			VirtualService: meshtest.VirtualService(types.VirtualServiceStatusCodeActive, "arn:x"),
		},
	}

	rec := &reconcile.Reconciler{API: api}
	_, err := rec.FindOrCreate(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if err != nil {
		t.Fatalf("FindOrCreate() err = %v", err)
	}

	if len(api.Events) != 2 {
		t.Fatalf("got %d calls, want 2", len(api.Events))
	}
	input, ok := api.Events[1].Input.(*appmesh.CreateVirtualServiceInput)
	if !ok {
		t.Fatalf("create input is %T", api.Events[1].Input)
	}
	if got, want := aws.ToString(input.MeshName), "m1"; got != want {
		t.Errorf("MeshName = %q, want %q", got, want)
	}
	if got, want := aws.ToString(input.VirtualServiceName), "svc1"; got != want {
		t.Errorf("VirtualServiceName = %q, want %q", got, want)
	}
	if input.MeshOwner != nil {
		t.Errorf("MeshOwner = %q, want nil", *input.MeshOwner)
	}
	if input.Spec != nil {
		t.Errorf("Spec = %#v, want nil", input.Spec)
	}
}

func TestFindOrCreate_unrecognizedStatus(t *testing.T) {
	api := &meshtest.API{
		Describes: []meshtest.DescribeResult{
			meshtest.Describe(meshtest.VirtualService(types.VirtualServiceStatusCode("PENDING"), "")),
		},
	}

	rec := &reconcile.Reconciler{API: api}
	_, err := rec.FindOrCreate(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if got := reconcile.KindOf(err); got != reconcile.AmbiguousState {
		t.Fatalf("kind = %v (err %v), want AmbiguousState", got, err)
	}
	// Ambiguous state must not trigger a duplicate-creation attempt.
	want := []string{"describe"}
	if diff := cmp.Diff(want, api.Calls()); diff != "" {
		t.Errorf("calls (-want +got)\n%s", diff)
	}
}

func TestFindOrCreate_describeError(t *testing.T) {
	api := &meshtest.API{
		Describes: []meshtest.DescribeResult{
			{Err: &smithy.GenericAPIError{Code: "ForbiddenException", Message: "denied"}},
		},
	}

	rec := &reconcile.Reconciler{API: api}
	_, err := rec.FindOrCreate(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if got := reconcile.KindOf(err); got != reconcile.RemoteError {
		t.Fatalf("kind = %v (err %v), want RemoteError", got, err)
	}
	want := []string{"describe"}
	if diff := cmp.Diff(want, api.Calls()); diff != "" {
		t.Errorf("calls (-want +got)\n%s", diff)
	}
}

func TestFindOrCreate_createError(t *testing.T) {
	api := &meshtest.API{
		Describes: []meshtest.DescribeResult{meshtest.NotFound()},
		CreateErr: &smithy.GenericAPIError{Code: "LimitExceededException", Message: "too many virtual services"},
	}

	rec := &reconcile.Reconciler{API: api}
	_, err := rec.FindOrCreate(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if got := reconcile.KindOf(err); got != reconcile.RemoteError {
		t.Fatalf("kind = %v (err %v), want RemoteError", got, err)
	}
}

func TestDelete(t *testing.T) {
	deleted := meshtest.VirtualService(types.VirtualServiceStatusCodeDeleted, "arn:x")
	api := &meshtest.API{
		DeleteOut: &appmesh.DeleteVirtualServiceOutput{VirtualService: deleted},
	}

	rec := &reconcile.Reconciler{API: api}
	got, err := rec.Delete(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if err != nil {
		t.Fatalf("Delete() err = %v", err)
	}
	if got != deleted {
		t.Error("delete payload was not returned unchanged")
	}
	want := []string{"delete"}
	if diff := cmp.Diff(want, api.Calls()); diff != "" {
		t.Errorf("calls (-want +got)\n%s", diff)
	}
}

func TestDelete_alreadyGone(t *testing.T) {
	api := &meshtest.API{
		DeleteErr: &types.NotFoundException{Message: aws.String("no such virtual service")},
	}

	rec := &reconcile.Reconciler{API: api}
	got, err := rec.Delete(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if err != nil {
		t.Fatalf("Delete() err = %v", err)
	}
	if got != nil {
		t.Errorf("payload = %#v, want nil", got)
	}
}

func TestDelete_error(t *testing.T) {
	api := &meshtest.API{
		DeleteErr: &smithy.GenericAPIError{Code: "ResourceInUseException", Message: "has routes"},
	}

	rec := &reconcile.Reconciler{API: api}
	_, err := rec.Delete(context.Background(), reconcile.Parameters{
		MeshName:           "m1",
		VirtualServiceName: "svc1",
	})
	if got := reconcile.KindOf(err); got != reconcile.RemoteError {
		t.Fatalf("kind = %v (err %v), want RemoteError", got, err)
	}
}
