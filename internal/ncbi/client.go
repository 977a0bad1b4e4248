// Package ncbi fetches protein sequences from the NCBI efetch service.
package ncbi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BigHat-Biosciences/NanoNet/internal/fasta"
)

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const userAgent = "nanonet/1.0"

// Client talks to the efetch endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with a 30 second request timeout.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// FetchProtein downloads the FASTA record for a protein accession. The
// returned record is named after the accession and its sequence is
// already cleaned.
func (c *Client) FetchProtein(ctx context.Context, accession string) (fasta.Record, error) {
	accession = strings.TrimSpace(accession)
	if accession == "" {
		return fasta.Record{}, errors.New("accession is required")
	}

	reqURL := fmt.Sprintf("%s/efetch.fcgi?db=protein&id=%s&rettype=fasta&retmode=text",
		c.baseURL(), url.QueryEscape(accession))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fasta.Record{}, fmt.Errorf("build efetch request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fasta.Record{}, fmt.Errorf("fetch %s: %w", accession, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fasta.Record{}, fmt.Errorf("read efetch response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fasta.Record{}, fmt.Errorf("NCBI fetch error for %s: %s", accession, strings.TrimSpace(string(body)))
	}

	records, err := fasta.Parse(bytes.NewReader(body))
	if err != nil {
		return fasta.Record{}, fmt.Errorf("parse efetch response for %s: %w", accession, err)
	}

	rec := fasta.Record{
		Name: fasta.CleanName(accession),
		Seq:  fasta.CleanSequence(records[0].Seq),
	}
	if rec.Seq == "" {
		return fasta.Record{}, fmt.Errorf("accession %s has no sequence data", accession)
	}
	return rec, nil
}
