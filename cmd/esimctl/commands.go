package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/airalo-esim-client/pkg/airalo"
)

func newTokenCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a valid access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			var token string
			if refresh {
				token, err = client.RefreshToken(cmd.Context())
			} else {
				token, err = client.GetAccessToken(cmd.Context())
			}
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "discard the cached token and fetch a new one")
	return cmd
}

func newPackagesCmd() *cobra.Command {
	var (
		country string
		pkgType string
		simOnly bool
		limit   int
		flat    bool
	)

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List the package catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			list, err := client.Packages.List(cmd.Context(), airalo.ListOptions{
				Country: country,
				Type:    pkgType,
				SimOnly: simOnly,
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			if list == nil {
				fmt.Println("no packages found")
				return nil
			}

			if flat {
				return printJSON(list.Flatten())
			}
			return printJSON(list)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "filter by ISO country code")
	cmd.Flags().StringVar(&pkgType, "type", "", "filter by type (local, global)")
	cmd.Flags().BoolVar(&simOnly, "sim-only", false, "exclude top-up variants")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of country entries")
	cmd.Flags().BoolVar(&flat, "flat", false, "flatten to one record per package")
	return cmd
}

func newOrderCmd() *cobra.Command {
	var (
		packageID   string
		quantity    int
		description string
		async       bool
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an eSIM order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			req := airalo.OrderRequest{
				PackageID:   packageID,
				Quantity:    quantity,
				Description: description,
			}

			var envelope *airalo.Envelope
			if async {
				envelope, err = client.Orders.CreateAsync(cmd.Context(), req)
			} else {
				envelope, err = client.Orders.Create(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			return printJSON(envelope)
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "package id to order (required)")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of eSIMs")
	cmd.Flags().StringVar(&description, "description", "", "order description")
	cmd.Flags().BoolVar(&async, "async", false, "place the order asynchronously")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

func newTopupCmd() *cobra.Command {
	var (
		packageID string
		iccid     string
	)

	cmd := &cobra.Command{
		Use:   "topup",
		Short: "Top up an existing eSIM",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			envelope, err := client.Topups.Create(cmd.Context(), airalo.TopupRequest{
				PackageID: packageID,
				ICCID:     iccid,
			})
			if err != nil {
				return err
			}
			return printJSON(envelope)
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "top-up package id (required)")
	cmd.Flags().StringVar(&iccid, "iccid", "", "target eSIM ICCID (required)")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("iccid")
	return cmd
}

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage <iccid> [iccid...]",
		Short: "Show usage for one or more eSIMs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				envelope, err := client.Sims.Usage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(envelope)
			}

			results, err := client.Sims.UsageBulk(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := make(map[string]any, len(results))
			for iccid, result := range results {
				if result.Err != nil {
					out[iccid] = map[string]string{"error": result.Err.Error()}
					continue
				}
				out[iccid] = result.Envelope
			}
			return printJSON(out)
		},
	}
	return cmd
}
