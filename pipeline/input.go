// Package pipeline is the I/O edge towards the deployment pipeline: it turns
// raw step inputs into reconciliation parameters and publishes the result
// back.
package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/meshops/meshsvc/reconcile"
)

// Input holds the raw string inputs supplied by the pipeline step. Spec and
// Tags are JSON documents; everything else is plain.
type Input struct {
	Action    string
	MeshName  string
	MeshOwner string
	Name      string
	Spec      string
	Tags      string
}

// Parse decodes and validates the inputs. Malformed JSON is an input error
// naming the offending field and the raw string; it is raised before any
// remote call is made.
func (in Input) Parse() (reconcile.Parameters, error) {
	p := reconcile.Parameters{
		MeshName:           in.MeshName,
		MeshOwner:          in.MeshOwner,
		VirtualServiceName: in.Name,
		Action:             reconcile.ActionCreate,
	}
	if in.Action != "" {
		p.Action = reconcile.Action(in.Action)
	}

	if in.Spec != "" {
		var spec reconcile.Spec
		if err := json.Unmarshal([]byte(in.Spec), &spec); err != nil {
			return reconcile.Parameters{}, inputErr("spec", in.Spec, err)
		}
		p.Spec = &spec
	}

	if in.Tags != "" {
		var tags []reconcile.Tag
		if err := json.Unmarshal([]byte(in.Tags), &tags); err != nil {
			return reconcile.Parameters{}, inputErr("tags", in.Tags, err)
		}
		p.Tags = tags
	}

	if err := p.Validate(); err != nil {
		return reconcile.Parameters{}, err
	}
	return p, nil
}

func inputErr(field, raw string, err error) error {
	return &reconcile.Error{
		Kind: reconcile.InputError,
		Msg:  fmt.Sprintf("invalid JSON in %s: %q", field, raw),
		Err:  err,
	}
}
