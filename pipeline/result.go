package pipeline

import (
	"encoding/json"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/appmesh/types"
	"github.com/meshops/meshsvc/reconcile"
	"github.com/pkg/errors"
)

// Result wraps the final remote representation of the virtual service for
// publishing back to the pipeline.
type Result struct {
	VirtualService *types.VirtualServiceData
}

// ARN extracts the resource identifier from the payload metadata. A payload
// without one cannot be published.
func (r Result) ARN() (string, error) {
	vs := r.VirtualService
	if vs == nil || vs.Metadata == nil || vs.Metadata.Arn == nil || *vs.Metadata.Arn == "" {
		return "", &reconcile.Error{
			Kind: reconcile.AmbiguousState,
			Msg:  "virtual service payload is missing the ARN",
		}
	}
	return *vs.Metadata.Arn, nil
}

// Publish writes the extracted ARN and the full payload as JSON.
func (r Result) Publish(w io.Writer) error {
	arn, err := r.ARN()
	if err != nil {
		return err
	}
	out := struct {
		ARN            string                    `json:"arn"`
		VirtualService *types.VirtualServiceData `json:"virtualService"`
	}{
		ARN:            arn,
		VirtualService: r.VirtualService,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encode result")
	}
	return nil
}
