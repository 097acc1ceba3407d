package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-bloodbank/pkg/client"
	"github.com/adfharrison1/go-bloodbank/pkg/domain"
	"github.com/adfharrison1/go-bloodbank/pkg/render"
)

func (a *app) session() *client.Session {
	c := client.New(a.cfg.APIURL,
		client.WithRetries(a.cfg.ClientRetries),
		client.WithLogger(a.log),
	)
	return client.NewSession(c)
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list <kind>",
		Short:   "Show every record of a kind",
		Example: "  bloodbank list donors\n  bloodbank list blood-types",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.KindByName(args[0])
			if err != nil {
				return err
			}

			records, err := a.session().Reload(cmd.Context(), kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table(kind, records))
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <kind> field=value...",
		Short:   "Create a record and show the refreshed list",
		Example: "  bloodbank add blood-types Blood_Type_ID=BT1 Name=O+\n  bloodbank add donors Donor_ID=D1 Name=Asha Age=31 Blood_Type=O+",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.KindByName(args[0])
			if err != nil {
				return err
			}
			form, err := client.ParseAssignments(args[1:])
			if err != nil {
				return err
			}

			session := a.session()
			message, err := session.Submit(cmd.Context(), kind, form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, message)
			fmt.Fprintln(out, render.Table(kind, session.Records(kind)))
			return nil
		},
	}
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List record kinds and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, kind := range domain.Kinds() {
				fmt.Fprintf(out, "%-22s /api/%-24s", kind.Name, kind.Path)
				for _, f := range kind.Fields {
					fmt.Fprintf(out, " %s:%s", f.Name, f.Type)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// redact hides the password of a connection string before it is logged.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
