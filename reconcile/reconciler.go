// Package reconcile converges a single App Mesh virtual service towards a
// desired state: present with a given spec, or absent.
//
// The reconciler is describe-first and never mutates an existing resource,
// so repeated invocations are safe: a retried pipeline run that finds the
// resource already present returns it as-is.
package reconcile

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
	"github.com/meshops/meshsvc/mesh"
	"go.uber.org/zap"
)

// A Reconciler ensures a virtual service exists or initiates its removal.
type Reconciler struct {
	API mesh.API

	// Logger logs reconciliation decisions. If not set, logs are discarded.
	Logger *zap.Logger
}

// FindOrCreate ensures the virtual service exists and returns its remote
// representation.
//
// An existing resource is returned unchanged, INACTIVE included; this tool
// does not repair or reactivate. A DELETED tombstone counts as absent and is
// re-created. An unrecognized status is fatal: guessing whether the resource
// exists could create a duplicate.
//
// At most one describe and one create call are issued.
func (r *Reconciler) FindOrCreate(ctx context.Context, p Parameters) (*types.VirtualServiceData, error) {
	logger := r.logger().With(
		zap.String("mesh", p.MeshName),
		zap.String("virtualService", p.VirtualServiceName),
	)

	out, err := r.API.DescribeVirtualService(ctx, p.DescribeInput())
	state, err := ClassifyDescribe(out, err)
	if err != nil {
		return nil, err
	}

	switch state {
	case StateActive:
		logger.Info("Virtual service exists")
		return out.VirtualService, nil
	case StateInactive:
		logger.Warn("Virtual service exists but is inactive")
		return out.VirtualService, nil
	case StateMissing, StateDeleted:
		// Absent, create below.
	default:
		return nil, unrecognizedStatus(out.VirtualService)
	}

	logger.Info("Creating virtual service", zap.String("previousState", state.String()))
	created, err := r.API.CreateVirtualService(ctx, p.CreateInput())
	if err != nil {
		return nil, classifyRemote(err)
	}
	logger.Info("Virtual service created")
	return created.VirtualService, nil
}

// Delete issues the delete call and returns the remote representation from
// the response. Completion is asynchronous; confirm it with a Waiter.
func (r *Reconciler) Delete(ctx context.Context, p Parameters) (*types.VirtualServiceData, error) {
	logger := r.logger().With(
		zap.String("mesh", p.MeshName),
		zap.String("virtualService", p.VirtualServiceName),
	)

	logger.Info("Deleting virtual service")
	out, err := r.API.DeleteVirtualService(ctx, p.DeleteInput())
	if err != nil {
		cerr := classifyRemote(err)
		if KindOf(cerr) == NotFound {
			// Already deleted.
			logger.Info("Virtual service does not exist")
			return nil, nil
		}
		return nil, cerr
	}
	return out.VirtualService, nil
}

func (r *Reconciler) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
