package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"problem-analytics-service/internal/config"
	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/report"
	"problem-analytics-service/internal/repository"
	"problem-analytics-service/internal/service"
	"problem-analytics-service/internal/zabbix"
)

func newReportCommand() *cobra.Command {
	var (
		hostID       int64
		triggerID    int64
		asJSON       bool
		withTimeline bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the month comparison of one trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			repo := repository.NewLogRepository()
			worker := service.NewDiagnosticsWorker(repo, cfg.DiagBufferSize, cfg.DiagBatchSize, cfg.DiagFlushEvery)
			defer worker.Shutdown()

			client := zabbix.NewClient(cfg.ZabbixURL, cfg.ZabbixAPIToken, cfg.ZabbixTimeout)
			svc := service.NewComparisonService(client, worker, repo, cfg.ZabbixTimeout, cfg.MetadataCacheTTL)

			comparison, err := svc.Compare(cmd.Context(), hostID, triggerID)
			if err != nil {
				var validationErr *service.ValidationError
				if errors.As(err, &validationErr) {
					return fmt.Errorf("host %d / trigger %d: %s", hostID, triggerID, validationErr.Message)
				}
				return err
			}

			var timeline *model.Timeline
			if withTimeline {
				t, err := svc.Timeline(cmd.Context(), hostID, triggerID, 0)
				if err != nil {
					return fmt.Errorf("timeline: %w", err)
				}
				timeline = &t
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					model.Comparison
					Timeline *model.Timeline `json:"timeline,omitempty"`
				}{comparison, timeline})
			}
			if err := report.Render(out, comparison); err != nil {
				return err
			}
			if timeline != nil {
				return report.RenderTimeline(out, *timeline)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&hostID, "hostid", 0, "Zabbix host id")
	cmd.Flags().Int64Var(&triggerID, "triggerid", 0, "Zabbix trigger id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw comparison as JSON")
	cmd.Flags().BoolVar(&withTimeline, "timeline", false, "also print the latest events of the trigger")
	_ = cmd.MarkFlagRequired("hostid")
	_ = cmd.MarkFlagRequired("triggerid")

	return cmd
}
