package zosmf

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxReceives bounds the poll loop when the address space never returns to
// the ready prompt.
const maxReceives = 10

type TsoResponse struct {
	Success         bool            `json:"success"`
	CommandResponse string          `json:"commandResponse"`
	Raw             json.RawMessage `json:"raw,omitempty"`
}

// Diagnostic is the reply body for an unsuccessful command: the last raw
// payload from the server when there is one, otherwise the response itself.
func (r *TsoResponse) Diagnostic() string {
	if len(r.Raw) > 0 {
		return string(r.Raw)
	}
	data, _ := json.Marshal(r)
	return string(data)
}

// Wire format of the /zosmf/tsoApp/tso replies.
type tsoReply struct {
	ServletKey string        `json:"servletKey"`
	TsoData    []tsoDataItem `json:"tsoData"`
	raw        json.RawMessage
}

type tsoDataItem struct {
	Message *tsoText `json:"TSO MESSAGE"`
	Prompt  *tsoText `json:"TSO PROMPT"`
}

type tsoText struct {
	Version string `json:"VERSION"`
	Data    string `json:"DATA"`
}

// IssueTso runs one interactive command: start an address space with the
// configured profile, send the command, collect output until the ready
// prompt, then stop the address space. A start that yields no servlet key
// is an unsuccessful response, not an error; transport and HTTP failures
// are errors for the caller to render.
func (c *Client) IssueTso(creds Credentials, command string) (*TsoResponse, error) {
	start, err := c.doTso(creds, http.MethodPost, "/zosmf/tsoApp/tso?"+c.startQuery(), nil)
	if err != nil {
		return nil, err
	}
	if start.ServletKey == "" {
		return &TsoResponse{Success: false, Raw: start.raw}, nil
	}
	keyPath := "/zosmf/tsoApp/tso/" + url.PathEscape(start.ServletKey)
	defer c.do(creds, http.MethodDelete, keyPath, nil, nil)

	send := map[string]interface{}{
		"TSO RESPONSE": map[string]string{"VERSION": "0100", "DATA": command},
	}
	reply, err := c.doTso(creds, http.MethodPut, keyPath, send)
	if err != nil {
		return nil, err
	}

	var lines []string
	prompted := collectTsoData(reply, &lines)
	for i := 0; i < maxReceives && !prompted; i++ {
		reply, err = c.doTso(creds, http.MethodGet, keyPath, nil)
		if err != nil {
			return nil, err
		}
		prompted = collectTsoData(reply, &lines)
	}

	return &TsoResponse{
		Success:         true,
		CommandResponse: strings.Join(lines, "\n"),
		Raw:             reply.raw,
	}, nil
}

func (c *Client) doTso(creds Credentials, method, path string, body interface{}) (*tsoReply, error) {
	var raw json.RawMessage
	if err := c.do(creds, method, path, body, &raw); err != nil {
		return nil, err
	}
	reply := &tsoReply{raw: raw}
	if err := json.Unmarshal(raw, reply); err != nil {
		return nil, fmt.Errorf("zosmf: decode tso reply: %w", err)
	}
	return reply, nil
}

func (c *Client) startQuery() string {
	q := url.Values{}
	q.Set("acct", c.profile.Account)
	q.Set("chset", c.profile.CharacterSet)
	q.Set("cpage", c.profile.CodePage)
	q.Set("cols", strconv.Itoa(c.profile.Columns))
	q.Set("proc", c.profile.LogonProcedure)
	q.Set("rsize", strconv.Itoa(c.profile.RegionSize))
	q.Set("rows", strconv.Itoa(c.profile.Rows))
	return q.Encode()
}

// collectTsoData appends message lines to out and reports whether the
// address space has returned to the ready prompt.
func collectTsoData(reply *tsoReply, out *[]string) bool {
	prompted := false
	for _, item := range reply.TsoData {
		if item.Message != nil {
			*out = append(*out, item.Message.Data)
		}
		if item.Prompt != nil {
			prompted = true
		}
	}
	return prompted
}
