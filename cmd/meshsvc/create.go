package cmd

import (
	"context"
	"os"

	"github.com/meshops/meshsvc/mesh"
	"github.com/meshops/meshsvc/pipeline"
	"github.com/meshops/meshsvc/reconcile"
	"github.com/spf13/cobra"
)

var createCommand = &cobra.Command{
	Use:   "create",
	Short: "Ensure the virtual service exists",
	Long: `Ensure the virtual service exists in the mesh.

If the virtual service already exists it is returned as-is, without
modification, so the command is safe to re-run. The ARN and the full
resource payload are printed to stdout as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := inputFromFlags(cmd)
		in.Action = string(reconcile.ActionCreate)

		params, err := in.Parse()
		if err != nil {
			fatal(err)
		}

		logger := buildLogger(cmd)
		defer func() {
			_ = logger.Sync()
		}()

		ctx := signalContext(context.Background())

		api, err := newAPI(ctx, cmd)
		if err != nil {
			fatal(err)
		}

		rec := &reconcile.Reconciler{API: api, Logger: logger}
		vs, err := rec.FindOrCreate(ctx, params)
		if err != nil {
			fatal(err)
		}

		res := pipeline.Result{VirtualService: vs}
		if err := res.Publish(os.Stdout); err != nil {
			fatal(err)
		}
	},
}

func init() {
	createCommand.Flags().String("spec", "", "Virtual service spec as JSON")
	createCommand.Flags().String("tags", "", "Tags as a JSON array of {key, value}")

	Meshsvc.AddCommand(createCommand)
}

func inputFromFlags(cmd *cobra.Command) pipeline.Input {
	in := pipeline.Input{}
	in.MeshName, _ = cmd.Flags().GetString("mesh")
	in.MeshOwner, _ = cmd.Flags().GetString("mesh-owner")
	in.Name, _ = cmd.Flags().GetString("name")
	if cmd.Flags().Lookup("spec") != nil {
		in.Spec, _ = cmd.Flags().GetString("spec")
	}
	if cmd.Flags().Lookup("tags") != nil {
		in.Tags, _ = cmd.Flags().GetString("tags")
	}
	return in
}

func newAPI(ctx context.Context, cmd *cobra.Command) (mesh.API, error) {
	region, _ := cmd.Flags().GetString("region")
	return mesh.New(ctx, region)
}
