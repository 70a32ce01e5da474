package cmd

import (
	"context"
	"os"
	"time"

	"github.com/meshops/meshsvc/pipeline"
	"github.com/meshops/meshsvc/reconcile"
	"github.com/spf13/cobra"
)

var deleteCommand = &cobra.Command{
	Use:   "delete",
	Short: "Delete the virtual service and wait for completion",
	Long: `Delete the virtual service and poll until the remote API confirms
it is gone. Deleting a virtual service that does not exist succeeds.

The ARN and the resource payload from the delete response are printed to
stdout as JSON once deletion is confirmed.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := inputFromFlags(cmd)
		in.Action = string(reconcile.ActionDelete)

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
		vs, err := rec.Delete(ctx, params)
		if err != nil {
			fatal(err)
		}

		w := &reconcile.Waiter{
			API:      api,
			Logger:   logger,
			MinDelay: flagDuration(cmd, "min-delay"),
			MaxDelay: flagDuration(cmd, "max-delay"),
			MaxWait:  flagDuration(cmd, "max-wait"),
		}
		if err := w.WaitUntilDeleted(ctx, params); err != nil {
			fatal(err)
		}

		// The resource was already absent: there is no payload to publish.
		if vs == nil {
			return
		}
		res := pipeline.Result{VirtualService: vs}
		if err := res.Publish(os.Stdout); err != nil {
			fatal(err)
		}
	},
}

func init() {
	deleteCommand.Flags().Duration("min-delay", reconcile.DefaultMinDelay, "Initial delay between polls")
	deleteCommand.Flags().Duration("max-delay", reconcile.DefaultMaxDelay, "Maximum delay between polls")
	deleteCommand.Flags().Duration("max-wait", reconcile.DefaultMaxWait, "Maximum total time to wait for deletion")

	Meshsvc.AddCommand(deleteCommand)
}

func flagDuration(cmd *cobra.Command, name string) time.Duration {
	d, _ := cmd.Flags().GetDuration(name)
	return d
}
