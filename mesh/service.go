// Package mesh constructs the App Mesh API client used by the reconciler.
package mesh

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/appmesh"
	"github.com/pkg/errors"
)

// API is the subset of the App Mesh API this tool uses. *appmesh.Client
// satisfies it; tests substitute a scripted fake.
type API interface {
	DescribeVirtualService(ctx context.Context, params *appmesh.DescribeVirtualServiceInput, optFns ...func(*appmesh.Options)) (*appmesh.DescribeVirtualServiceOutput, error)
	CreateVirtualService(ctx context.Context, params *appmesh.CreateVirtualServiceInput, optFns ...func(*appmesh.Options)) (*appmesh.CreateVirtualServiceOutput, error)
	DeleteVirtualService(ctx context.Context, params *appmesh.DeleteVirtualServiceInput, optFns ...func(*appmesh.Options)) (*appmesh.DeleteVirtualServiceOutput, error)
}

// New builds an App Mesh client from the default AWS config chain
// (environment, shared config, instance role). An explicit configuration
// value is returned rather than mutating any shared client state. If region
// is empty, the chain's region is used.
func New(ctx context.Context, region string) (API, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return appmesh.NewFromConfig(cfg), nil
}
