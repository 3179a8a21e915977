package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thefortaiagency/bendavis/internal/app"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/usecase"
)

type dnsOptions struct {
	name       string
	recordType string
	data       string
	ttl        int
}

func newDNSCmd(opts *rootOptions) *cobra.Command {
	dnsOpts := &dnsOptions{}

	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage the site's DNS record at GoDaddy",
	}
	cmd.PersistentFlags().StringVar(&dnsOpts.name, "name", usecase.DefaultDNSRecordName, "Record name within the domain")
	cmd.PersistentFlags().StringVar(&dnsOpts.recordType, "type", string(model.DNSRecordA), "Record type (A, CNAME, TXT)")

	configure := &cobra.Command{
		Use:   "configure",
		Short: "Create the record, or update it when it already exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dns, err := app.NewDNSUsecase(opts.cfg.GoDaddy, opts.logger)
			if err != nil {
				return err
			}
			record := model.DNSRecord{
				Type: model.DNSRecordType(dnsOpts.recordType),
				Name: dnsOpts.name,
				Data: dnsOpts.data,
				TTL:  dnsOpts.ttl,
			}
			action, err := dns.Configure(cmd.Context(), record)
			if err != nil {
				return err
			}
			fmt.Fprintf(
				cmd.OutOrStdout(), "%s %s record %s.%s -> %s\n",
				action, record.Type, record.Name, dns.Domain(), record.Data,
			)
			return nil
		},
	}
	configure.Flags().StringVar(&dnsOpts.data, "data", usecase.DefaultDNSRecordData, "Record value")
	configure.Flags().IntVar(&dnsOpts.ttl, "ttl", usecase.DefaultDNSRecordTTL, "Record TTL in seconds")

	check := &cobra.Command{
		Use:   "check",
		Short: "Show the records currently registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dns, err := app.NewDNSUsecase(opts.cfg.GoDaddy, opts.logger)
			if err != nil {
				return err
			}
			records, err := dns.Check(cmd.Context(), model.DNSRecordType(dnsOpts.recordType), dnsOpts.name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "no %s record %s.%s\n", dnsOpts.recordType, dnsOpts.name, dns.Domain())
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s %s.%s -> %s (ttl %d)\n", dnsOpts.recordType, dnsOpts.name, dns.Domain(), r.Data, r.TTL)
			}
			return nil
		},
	}

	cmd.AddCommand(configure, check)
	return cmd
}
