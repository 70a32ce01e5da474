package reconcile

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appmesh"
	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
	"gopkg.in/go-playground/validator.v9"
)

// Action selects what the invocation should converge towards.
type Action string

// Supported actions.
const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Parameters is the canonical parameter set for one reconciliation. All
// API-specific inputs are projected from it; empty optional fields are
// stripped during projection so the remote API never receives empty strings.
type Parameters struct {
	// MeshName is the service mesh the virtual service belongs to.
	MeshName string `validate:"required"`

	// MeshOwner is the AWS account ID of the mesh owner. Only needed when
	// the mesh is shared from another account.
	MeshOwner string

	// VirtualServiceName identifies the virtual service within the mesh.
	VirtualServiceName string `validate:"required"`

	// Action to perform. Defaults to create.
	Action Action `validate:"oneof=create delete"`

	// Spec is the desired virtual service specification. Only used on
	// create; may be nil.
	Spec *Spec

	// Tags to attach on create.
	Tags []Tag
}

// Spec describes the desired virtual service provider.
type Spec struct {
	Provider *Provider `json:"provider,omitempty"`
}

// Provider routes traffic for the virtual service. At most one of the fields
// is set.
type Provider struct {
	VirtualNode   *VirtualNodeProvider   `json:"virtualNode,omitempty"`
	VirtualRouter *VirtualRouterProvider `json:"virtualRouter,omitempty"`
}

// VirtualNodeProvider targets a virtual node.
type VirtualNodeProvider struct {
	VirtualNodeName string `json:"virtualNodeName"`
}

// VirtualRouterProvider targets a virtual router.
type VirtualRouterProvider struct {
	VirtualRouterName string `json:"virtualRouterName"`
}

// Tag is a key-value label attached to the virtual service.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

var check = validator.New()

// Validate checks that required fields are set and the action is recognized.
// An empty Action passes validation as create, but the receiver is not
// modified: callers that branch on Action must set it explicitly.
func (p Parameters) Validate() error {
	if p.Action == "" {
		p.Action = ActionCreate
	}
	if err := check.Struct(p); err != nil {
		return &Error{Kind: InputError, Msg: "invalid parameters", Err: err}
	}
	return nil
}

// DescribeInput projects the parameters for a describe call.
func (p Parameters) DescribeInput() *appmesh.DescribeVirtualServiceInput {
	return &appmesh.DescribeVirtualServiceInput{
		MeshName:           strOrNil(p.MeshName),
		MeshOwner:          strOrNil(p.MeshOwner),
		VirtualServiceName: strOrNil(p.VirtualServiceName),
	}
}

// CreateInput projects the parameters for a create call: the describe fields
// plus the spec and tags, when set.
func (p Parameters) CreateInput() *appmesh.CreateVirtualServiceInput {
	return &appmesh.CreateVirtualServiceInput{
		MeshName:           strOrNil(p.MeshName),
		MeshOwner:          strOrNil(p.MeshOwner),
		VirtualServiceName: strOrNil(p.VirtualServiceName),
		Spec:               p.Spec.toSDK(),
		Tags:               tagsToSDK(p.Tags),
	}
}

// DeleteInput projects the parameters for a delete call.
func (p Parameters) DeleteInput() *appmesh.DeleteVirtualServiceInput {
	return &appmesh.DeleteVirtualServiceInput{
		MeshName:           strOrNil(p.MeshName),
		MeshOwner:          strOrNil(p.MeshOwner),
		VirtualServiceName: strOrNil(p.VirtualServiceName),
	}
}

func (s *Spec) toSDK() *types.VirtualServiceSpec {
	if s == nil {
		return nil
	}
	out := &types.VirtualServiceSpec{}
	if s.Provider != nil {
		switch {
		case s.Provider.VirtualNode != nil && s.Provider.VirtualNode.VirtualNodeName != "":
			out.Provider = &types.VirtualServiceProviderMemberVirtualNode{
				Value: types.VirtualNodeServiceProvider{
					VirtualNodeName: aws.String(s.Provider.VirtualNode.VirtualNodeName),
				},
			}
		case s.Provider.VirtualRouter != nil && s.Provider.VirtualRouter.VirtualRouterName != "":
			out.Provider = &types.VirtualServiceProviderMemberVirtualRouter{
				Value: types.VirtualRouterServiceProvider{
					VirtualRouterName: aws.String(s.Provider.VirtualRouter.VirtualRouterName),
				},
			}
		}
	}
	return out
}

func tagsToSDK(tags []Tag) []types.TagRef {
	if len(tags) == 0 {
		return nil
	}
	out := make([]types.TagRef, 0, len(tags))
	for _, t := range tags {
		if t.Key == "" {
			continue
		}
		out = append(out, types.TagRef{
			Key:   aws.String(t.Key),
			Value: strOrNil(t.Value),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// strOrNil omits empty values from projected inputs. The remote API treats
// an empty string differently from an absent field.
func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
