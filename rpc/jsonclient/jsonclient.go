// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient json-rpc client of the node, used by the cli
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	prefix string
	client *http.Client
	id     uint64
}

func addPrefix(prefix, name string) string {
	if strings.Contains(name, ".") || prefix == "" {
		return name
	}
	return prefix + "." + name
}

// NewJSONClient client of url, method names must be qualified
func NewJSONClient(url string) (*JSONClient, error) {
	return New("", url)
}

// New produce a jsonclient; unqualified method names get prefix
func New(prefix, url string) (*JSONClient, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{
		url:    url,
		prefix: prefix,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call invoke method, decode the result into resp. Errors known to the
// node come back as their sentinels.
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	req := &clientRequest{
		Method: addPrefix(client.prefix, method),
		ID:     atomic.AddUint64(&client.id, 1),
	}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return err
	}
	if postresp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(b))
		if msg == types.ErrRateLimited.Error() {
			return types.ErrRateLimited
		}
		return fmt.Errorf("http %d: %s", postresp.StatusCode, msg)
	}
	cresp := &clientResponse{}
	if err := json.Unmarshal(b, cresp); err != nil {
		return errors.Wrapf(err, "decode response %q", string(b))
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return fmt.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return types.ErrorFromString(x)
	}
	if cresp.Result == nil {
		return types.ErrNotFound
	}
	return json.Unmarshal(*cresp.Result, resp)
}
