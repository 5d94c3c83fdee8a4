package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/analytix/pkg/services/report"
)

const checkWindow = 28 * 24 * time.Hour

type CheckCmd struct {
	request requestFlags
	service report.Service
	now     func() time.Time
}

// NewCheckCmd classifies and verifies a request without contacting the API.
func NewCheckCmd(service report.Service) *cobra.Command {
	cc := &CheckCmd{
		request: requestFlags{window: checkWindow},
		service: service,
		now:     time.Now,
	}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Determine the report type of a request and verify it offline",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}

	cc.request.bind(cmd)

	return cmd
}

func (cc *CheckCmd) run(cmd *cobra.Command, _ []string) error {
	req, err := cc.request.build(cc.now(), "")
	if err != nil {
		return err
	}

	plan, err := cc.service.Plan(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Report type: %s (%s)\n", plan.Type.ID, plan.Type.Name)
	fmt.Fprintf(out, "Metrics: %s\n", strings.Join(plan.Metrics, ", "))
	fmt.Fprintf(out, "Query: %s\n", plan.Query.Encode())
	return nil
}
