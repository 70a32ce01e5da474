package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Meshsvc is the root command.
var Meshsvc = &cobra.Command{
	Use:           "meshsvc",
	Short:         "Reconcile an App Mesh virtual service as a pipeline step",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := Meshsvc.PersistentFlags()
	pf.String("mesh", "", "Name of the service mesh")
	pf.String("mesh-owner", "", "AWS account ID of the mesh owner, for shared meshes")
	pf.String("name", "", "Name of the virtual service")
	pf.String("region", "", "AWS region. If empty, the default config chain is used")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
}

// buildLogger builds the process logger. Logs go to stderr; stdout is
// reserved for the published result.
func buildLogger(cmd *cobra.Command) *zap.Logger {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		log.Fatalf("Get verbose flag: %v", err)
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Build logger: %v", err)
	}
	return logger
}
