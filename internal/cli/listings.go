package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/format"
)

func init() {
	rootCmd.AddCommand(listingsCmd)
	listingsCmd.AddCommand(listingsListCmd)
	listingsCmd.AddCommand(listingsShowCmd)
	listingsCmd.AddCommand(listingsSeedCmd)
	listingsCmd.AddCommand(listingsStatsCmd)
	listingsCmd.AddCommand(listingsInquiriesCmd)

	f := listingsListCmd.Flags()
	f.String("status", "", "filter by status")
	f.String("city", "", "filter by city")
	f.String("type", "", "filter by property type")
	f.Int64("min-price", 0, "minimum price")
	f.Int64("max-price", 0, "maximum price")
	f.Int("min-beds", 0, "minimum bedrooms")
	f.Bool("featured", false, "only featured listings")
	f.String("agent", "", "filter by agent id")
	f.String("sort", string(domain.SortNewest), "sort order (newest, oldest, price_asc, price_desc, sqft_desc)")
	f.Int("page", 1, "page number")
	f.Int("per-page", domain.DefaultPerPage, "listings per page")

	listingsSeedCmd.Flags().StringP("file", "f", "", "YAML file with agents and listings (required)")
	_ = listingsSeedCmd.MarkFlagRequired("file")

	listingsInquiriesCmd.Flags().Int("limit", 20, "maximum inquiries to show")
}

var listingsCmd = &cobra.Command{
	Use:     "listings",
	Short:   "Inspect and seed listing data",
	Aliases: []string{"listing", "l"},
}

// listingSource is satisfied by the local service and the API client.
type listingSource interface {
	Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error)
	Get(ctx context.Context, idOrSlug string) (*domain.Listing, error)
}

type remoteSource struct{ c *APIClient }

func (r remoteSource) Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	return r.c.Listings(ctx, q)
}

func (r remoteSource) Get(ctx context.Context, idOrSlug string) (*domain.Listing, error) {
	return r.c.Listing(ctx, idOrSlug)
}

// withSource runs fn against the configured server or the local database.
func withSource(ctx context.Context, s Settings, fn func(src listingSource) error) error {
	if s.Server != "" {
		return fn(remoteSource{c: NewAPIClient(s.Server)})
	}
	app, err := openLocal(ctx, s)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app.listings)
}

// withLocal runs fn against the local database; the command cannot go
// through a server.
func withLocal(ctx context.Context, s Settings, fn func(app *local) error) error {
	if s.Server != "" {
		return fmt.Errorf("this command works on the local database only; unset --server")
	}
	app, err := openLocal(ctx, s)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func queryFromFlags(cmd *cobra.Command) domain.ListingQuery {
	f := cmd.Flags()
	var q domain.ListingQuery
	status, _ := f.GetString("status")
	q.Status = domain.ListingStatus(status)
	q.City, _ = f.GetString("city")
	q.PropertyType, _ = f.GetString("type")
	q.MinPrice, _ = f.GetInt64("min-price")
	q.MaxPrice, _ = f.GetInt64("max-price")
	q.MinBeds, _ = f.GetInt("min-beds")
	q.FeaturedOnly, _ = f.GetBool("featured")
	q.AgentID, _ = f.GetString("agent")
	sort, _ := f.GetString("sort")
	q.Sort = domain.ListingSort(sort)
	q.Page, _ = f.GetInt("page")
	q.PerPage, _ = f.GetInt("per-page")
	return q.Normalized()
}

var listingsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List listings matching filters",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		q := queryFromFlags(cmd)
		return withSource(cmd.Context(), CurrentSettings(), func(src listingSource) error {
			page, err := src.Query(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to query listings: %w", err)
			}
			return printListingPage(cmd.OutOrStdout(), page, outputFormat)
		})
	},
}

var listingsShowCmd = &cobra.Command{
	Use:   "show <id|slug>",
	Short: "Show one listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSource(cmd.Context(), CurrentSettings(), func(src listingSource) error {
			l, err := src.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printListing(cmd.OutOrStdout(), l, outputFormat)
		})
	},
}

// SeedFile is the document read by listings seed.
type SeedFile struct {
	Agents   []*domain.Agent   `yaml:"agents"`
	Listings []*domain.Listing `yaml:"listings"`
}

// readSeedFile parses a seed document.
func readSeedFile(r io.Reader) (*SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return &seed, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

var listingsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load agents and listings from a YAML file",
	Example: `  hph listings seed -f testdata/listings.yaml
  hph listings seed -f - < listings.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		var r io.Reader = cmd.InOrStdin()
		if path != "-" {
			file, err := os.Open(path) //nolint:gosec // path is chosen by the user
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()
			r = file
		}
		seed, err := readSeedFile(r)
		if err != nil {
			return err
		}
		return withLocal(cmd.Context(), CurrentSettings(), func(app *local) error {
			n, err := app.listings.Seed(cmd.Context(), seed.Agents, seed.Listings)
			if err != nil {
				return fmt.Errorf("seeded %d of %d listings: %w", n, len(seed.Listings), err)
			}
			Success(cmd.OutOrStdout(), "Seeded %s and %s", plural(len(seed.Agents), "agent"), plural(n, "listing"))
			return nil
		})
	},
}

var listingsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count listings by status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withLocal(cmd.Context(), CurrentSettings(), func(app *local) error {
			counts, err := app.listings.CountByStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printCounts(cmd.OutOrStdout(), counts, outputFormat)
		})
	},
}

var listingsInquiriesCmd = &cobra.Command{
	Use:   "inquiries <listing-id>",
	Short: "Show the latest inquiries about a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withLocal(cmd.Context(), CurrentSettings(), func(app *local) error {
			inquiries, err := app.inquiries.ForListing(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printInquiries(cmd.OutOrStdout(), inquiries, outputFormat)
		})
	},
}

func printListingPage(w io.Writer, page *domain.ListingPage, outFormat string) error {
	if structured(outFormat) {
		return printData(w, page, outFormat)
	}
	if len(page.Items) == 0 {
		Info(w, "No listings found")
		return nil
	}
	t := newTable(w)
	t.AppendHeader(rowOf("ID", "Title", "Status", "Price", "Beds", "Baths", "Sq Ft", "City", "Updated"))
	for _, l := range page.Items {
		updated := ""
		if !l.UpdatedAt.IsZero() {
			updated = humanize.Time(l.UpdatedAt)
		}
		t.AppendRow(rowOf(
			l.ID,
			truncate(l.Title, 36),
			l.Status.Label(),
			format.Money(l.Price),
			l.Bedrooms,
			format.Decimal(l.Bathrooms, 1),
			format.Number(l.SquareFeet),
			l.Address.City,
			updated,
		))
	}
	t.AppendFooter(rowOf("", plural(page.Total, "listing"), "", "", "", "", "", "",
		"page "+strconv.Itoa(page.Page)+" of "+strconv.Itoa(max(page.TotalPages, 1))))
	t.Render()
	return nil
}

func printListing(w io.Writer, l *domain.Listing, outFormat string) error {
	if structured(outFormat) {
		return printData(w, l, outFormat)
	}
	t := newTable(w)
	t.AppendRow(rowOf("ID", l.ID))
	t.AppendRow(rowOf("Slug", orDash(l.Slug)))
	t.AppendRow(rowOf("Title", l.Title))
	t.AppendRow(rowOf("Status", l.Status.Label()))
	t.AppendRow(rowOf("Price", format.Money(l.Price)))
	t.AppendRow(rowOf("Address", strings.Trim(l.Address.Line1()+", "+l.Address.Line2(), ", ")))
	t.AppendRow(rowOf("Beds / Baths", strconv.Itoa(l.Bedrooms)+" / "+format.Decimal(l.Bathrooms, 1)))
	t.AppendRow(rowOf("Square Feet", format.Number(l.SquareFeet)))
	t.AppendRow(rowOf("Photos", len(l.Gallery)))
	if l.Agent != nil {
		t.AppendRow(rowOf("Agent", l.Agent.Name))
	}
	t.AppendRow(rowOf("URL", l.URL()))
	t.Render()
	return nil
}

func printCounts(w io.Writer, counts map[domain.ListingStatus]int, outFormat string) error {
	if structured(outFormat) {
		out := make(map[string]int, len(counts))
		for s, n := range counts {
			out[string(s)] = n
		}
		return printData(w, out, outFormat)
	}
	t := newTable(w)
	t.AppendHeader(rowOf("Status", "Listings"))
	total := 0
	for _, s := range domain.ListingStatuses {
		t.AppendRow(rowOf(s.Label(), humanize.Comma(int64(counts[s]))))
		total += counts[s]
	}
	t.AppendFooter(rowOf("Total", humanize.Comma(int64(total))))
	t.Render()
	return nil
}

func printInquiries(w io.Writer, inquiries []*domain.Inquiry, outFormat string) error {
	if structured(outFormat) {
		return printData(w, inquiries, outFormat)
	}
	if len(inquiries) == 0 {
		Info(w, "No inquiries yet")
		return nil
	}
	t := newTable(w)
	t.AppendHeader(rowOf("Received", "Name", "Email", "Tour", "Message"))
	for _, in := range inquiries {
		tour := ""
		if in.Tour {
			tour = "✓"
		}
		t.AppendRow(rowOf(humanize.Time(in.CreatedAt), in.Name, in.Email, tour, truncate(in.Message, 48)))
	}
	t.Render()
	return nil
}
