package ncep

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/charmap"

	"gribdefs/internal"
	"gribdefs/internal/config"
	"gribdefs/internal/util"
)

// Column order of the NCEP Table 4.2 pages.
const (
	colID = iota
	colName
	colUnit
	colShortName
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.RateLimitRPS),
	}
}

func (c *Client) TableURL(discipline, category int) string {
	repl := strings.NewReplacer(
		"{discipline}", strconv.Itoa(discipline),
		"{category}", strconv.Itoa(category),
	)
	return repl.Replace(c.cfg.TableURLTemplate)
}

// FetchTable downloads the parameter table for one (discipline, category)
// pair and returns its normalized data rows in page order. A page without a
// table yields no rows and no error.
func (c *Client) FetchTable(ctx context.Context, discipline, category int) ([]internal.TableRow, error) {
	u := c.TableURL(discipline, category)
	body, err := c.fetchDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch table discipline=%d category=%d: %w", discipline, category, err)
	}
	rows, err := ParseTable(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse table %s: %w", u, err)
	}
	return rows, nil
}

func (c *Client) fetchDocument(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.WaitTurn(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ncep status %d for %s", resp.StatusCode, u)
	}

	// Older table pages are served as Windows-1252.
	if !utf8.Valid(body) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}
	return body, nil
}

// ParseTable reads the first table of an HTML document, skips its header
// row and normalizes the identifier, name, unit and short name columns.
func ParseTable(r io.Reader) ([]internal.TableRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil
	}

	grid := BuildGrid(table)
	rows := make([]internal.TableRow, 0, len(grid))
	for i := 1; i < len(grid); i++ {
		rows = append(rows, toTableRow(grid, i))
	}
	return rows, nil
}

func toTableRow(grid Grid, i int) internal.TableRow {
	row := internal.TableRow{}
	if raw, ok := grid.Cell(i, colID); ok {
		row.ID, row.IDText, row.HasID = util.NormalizeIdentifier(raw)
	}
	if raw, ok := grid.Cell(i, colName); ok {
		row.Name = util.NormalizeName(raw)
	}
	if raw, ok := grid.Cell(i, colUnit); ok {
		row.Unit = util.NormalizeUnit(raw)
	}
	if raw, ok := grid.Cell(i, colShortName); ok {
		row.ShortName = util.NormalizeShortName(raw)
	}
	return row
}
