// Package zosmf wraps the z/OSMF REST APIs used by the gateway: the jobs
// interface (search, submit, cancel, delete) and the TSO/E address space
// interface for interactive commands. The client is built once from config;
// credentials come in per call from the stored credential record.
package zosmf

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type TsoProfile struct {
	Account        string `yaml:"account"`
	CharacterSet   string `yaml:"characterSet"`
	CodePage       string `yaml:"codePage"`
	Columns        int    `yaml:"columns"`
	LogonProcedure string `yaml:"logonProcedure"`
	RegionSize     int    `yaml:"regionSize"`
	Rows           int    `yaml:"rows"`
}

type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// RejectUnauthorized mirrors the session profile: when false (the
	// shipped default) TLS certificate verification is disabled.
	RejectUnauthorized bool `yaml:"rejectUnauthorized"`
	Encoding           int  `yaml:"encoding"`
	// ResponseTimeout is the per-call budget in seconds.
	ResponseTimeout int        `yaml:"responseTimeout"`
	Profile         TsoProfile `yaml:"profile"`
}

// Credentials are supplied per call from the sender's credential record.
type Credentials struct {
	User string
	Pass string
}

type Client struct {
	base    string
	http    *http.Client
	profile TsoProfile
}

func NewClient(cfg Config) *Client {
	timeout := cfg.ResponseTimeout
	if timeout <= 0 {
		timeout = 600
	}
	return &Client{
		base: fmt.Sprintf("https://%s:%d", cfg.Host, cfg.Port),
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.RejectUnauthorized},
			},
		},
		profile: cfg.Profile,
	}
}

// do performs one authenticated call and decodes the JSON response into out
// when out is non-nil. Non-2xx statuses come back as errors carrying the
// z/OSMF error body, which the router renders directly to the user.
func (c *Client) do(creds Credentials, method, path string, body interface{}, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("zosmf: encode %s request: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		return fmt.Errorf("zosmf: build request: %w", err)
	}
	req.SetBasicAuth(creds.User, creds.Pass)
	req.Header.Set("X-CSRF-ZOSMF-HEADER", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("zosmf: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("zosmf: read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("zosmf: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("zosmf: decode %s response: %w", path, err)
		}
	}
	return nil
}
