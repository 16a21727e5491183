package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/travlr/internal/listing"
)

const browseHelp = "type to search, :sort to flip order, :reload, :quit"

func newTripsBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively search upcoming trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var mu sync.Mutex

			ctrl := listing.NewController(listing.WithOnChange(func(st listing.State) {
				mu.Lock()
				defer mu.Unlock()
				renderState(out, st)
			}))
			defer ctrl.Close()

			fmt.Fprintln(out, browseHelp)
			_ = ctrl.Load(cmd.Context(), a.fetchTrips)

			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				line := sc.Text()
				switch strings.TrimSpace(line) {
				case ":quit", ":q":
					return nil
				case ":sort":
					ctrl.ToggleSort()
				case ":reload":
					_ = ctrl.Load(cmd.Context(), a.fetchTrips)
				default:
					ctrl.SetSearch(line)
				}
			}
			return sc.Err()
		},
	}
}

func renderState(w io.Writer, st listing.State) {
	if st.Loading {
		fmt.Fprintln(w, "Loading trips...")
		return
	}
	if st.Error != "" {
		fmt.Fprintln(w, st.Error)
		return
	}
	order := "ascending"
	if !st.Ascending {
		order = "descending"
	}
	fmt.Fprintf(w, "-- %s, search %q --\n", order, st.Query)
	renderList(w, st.Visible, st.Metrics)
}
