package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/travlr/internal/features/trips"
	"github.com/xyz-asif/travlr/internal/listing"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

func newTripsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List, inspect and edit trips",
	}
	cmd.AddCommand(
		newTripsListCmd(a),
		newTripsGetCmd(a),
		newTripsAddCmd(a),
		newTripsUpdateCmd(a),
		newTripsBrowseCmd(a),
	)
	return cmd
}

// fetchTrips adapts the client to listing.Fetcher. An empty collection
// comes back from the API as 404, which is not an error here.
func (a *app) fetchTrips(ctx context.Context) ([]trips.Trip, error) {
	list, err := a.client.GetTrips(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]trips.Trip, 0, len(list))
	for _, t := range list {
		out = append(out, t.Trip)
	}
	return out, nil
}

func newTripsListCmd(a *app) *cobra.Command {
	var (
		search string
		desc   bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show upcoming trips sorted by start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.fetchTrips(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			base := listing.Build(list, now)
			shown := base
			if all {
				shown = allViews(list, now)
			}
			renderList(cmd.OutOrStdout(), listing.Apply(shown, search, !desc), listing.ComputeMetrics(base))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name, code or resort")
	cmd.Flags().BoolVar(&desc, "desc", false, "latest start first")
	cmd.Flags().BoolVar(&all, "all", false, "include trips that already started")
	return cmd
}

// allViews skips the upcoming filter. Past trips get a negative DaysUntil.
func allViews(list []trips.Trip, now time.Time) []listing.View {
	views := make([]listing.View, 0, len(list))
	for _, t := range list {
		views = append(views, listing.ToView(t, now))
	}
	return listing.SortByStart(views)
}

func newTripsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get CODE",
		Short: "Show one trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.client.GetTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
}

// tripFlags binds every trip field. Only flags the user set end up in the request.
type tripFlags struct {
	code, name, start, resort, image, description string
	length, price                                 string
}

func (f *tripFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "trip code")
	cmd.Flags().StringVar(&f.name, "name", "", "trip name")
	cmd.Flags().StringVar(&f.length, "length", "", "length in days")
	cmd.Flags().StringVar(&f.start, "start", "", "start date, e.g. 2030-02-14 or RFC 3339")
	cmd.Flags().StringVar(&f.resort, "resort", "", "resort description")
	cmd.Flags().StringVar(&f.price, "price", "", "price per person, at most 2 decimals")
	cmd.Flags().StringVar(&f.image, "image", "", "image filename")
	cmd.Flags().StringVar(&f.description, "description", "", "trip description")
}

func (f *tripFlags) request(cmd *cobra.Command) trips.TripRequest {
	var req trips.TripRequest
	set := func(name string, v string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return trips.StringPtr(v)
	}
	num := func(name string, v string) *trips.Numeric {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		n := trips.Numeric(strings.TrimSpace(v))
		return &n
	}

	req.Code = set("code", f.code)
	req.Name = set("name", f.name)
	req.Length = num("length", f.length)
	req.Start = set("start", f.start)
	req.Resort = set("resort", f.resort)
	req.PerPerson = num("price", f.price)
	req.Image = set("image", f.image)
	req.Description = set("description", f.description)
	return req
}

func newTripsAddCmd(a *app) *cobra.Command {
	var f tripFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a trip (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.client.AddTrip(cmd.Context(), f.request(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", t.Code)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTripsUpdateCmd(a *app) *cobra.Command {
	var f tripFlags

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Change fields of an existing trip (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := f.request(cmd)
			if req.Code == nil {
				req.Code = trips.StringPtr(args[0])
			}
			t, err := a.client.UpdateTripByCode(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", t.Code)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func renderList(w io.Writer, views []listing.View, m listing.Metrics) {
	if m.Count == 0 && len(views) == 0 {
		fmt.Fprintln(w, "No upcoming trips")
		return
	}
	fmt.Fprintf(w, "%d upcoming, next starts %s\n", m.Count, m.NextStart)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tRESORT\tSTART\tDAYS\tPRICE\tIN")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\t%dd\n",
			v.Code, v.Name, v.Resort, v.Start.UTC().Format("2006-01-02"), v.LengthDays, v.PricePerPerson, v.DaysUntil)
	}
	tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
