package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const requestTimeout = 30 * time.Second

// Context carries what a command needs to reach the engine and print.
type Context struct {
	Node         string
	OutputFormat string
	From         string

	HTTPClient *http.Client
	Output     io.Writer
	Viper      *viper.Viper
}

// GetClientContext builds a Context from the flags and environment of cmd.
func GetClientContext(cmd *cobra.Command) (Context, error) {
	v, err := NewViper(cmd)
	if err != nil {
		return Context{}, err
	}

	clientCtx := Context{
		Node:         strings.TrimSuffix(v.GetString(FlagNode), "/"),
		OutputFormat: v.GetString(FlagOutput),
		From:         v.GetString(FlagFrom),
		HTTPClient:   &http.Client{Timeout: requestTimeout},
		Output:       cmd.OutOrStdout(),
		Viper:        v,
	}

	if clientCtx.OutputFormat == "" {
		clientCtx.OutputFormat = OutputFormatJSON
	}

	switch clientCtx.OutputFormat {
	case OutputFormatJSON, OutputFormatYAML:
	default:
		return clientCtx, errors.Errorf("unsupported output format %q", clientCtx.OutputFormat)
	}

	return clientCtx, nil
}

// WithOutput returns a copy writing to w.
func (ctx Context) WithOutput(w io.Writer) Context {
	ctx.Output = w
	return ctx
}

// Query issues a GET and prints the response.
func (ctx Context) Query(path string, params url.Values) error {
	if len(params) != 0 {
		path += "?" + params.Encode()
	}

	bz, err := ctx.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	return ctx.PrintRaw(bz)
}

// Broadcast POSTs msg as JSON and prints the response.
func (ctx Context) Broadcast(path string, msg any) error {
	bz, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	res, err := ctx.do(http.MethodPost, path, bytes.NewReader(bz))
	if err != nil {
		return err
	}

	return ctx.PrintRaw(res)
}

type errorResponse struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Error     string `json:"error"`
}

func (ctx Context) do(method, path string, body io.Reader) ([]byte, error) {
	if ctx.Node == "" {
		return nil, errors.New("node address is empty")
	}

	req, err := http.NewRequest(method, ctx.Node+path, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ctx.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reach %s", ctx.Node)
	}
	defer res.Body.Close()

	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		var errRes errorResponse
		if err := json.Unmarshal(bz, &errRes); err != nil || errRes.Error == "" {
			return nil, errors.Errorf("%s %s: %s", method, path, res.Status)
		}

		return nil, fmt.Errorf("%s (codespace: %s, code: %d)", errRes.Error, errRes.Codespace, errRes.Code)
	}

	return bz, nil
}
