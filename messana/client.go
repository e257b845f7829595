package messana

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client speaks the mBox controller's HTTP API.
// It does no retrying and no caching; callers get whatever the controller says.
type Client struct {
	base   string
	apikey string
	client *http.Client
}

// Command is the body the mBox expects on every PUT
type Command struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
}

// NewClient builds a client for a single mBox controller
func NewClient(host, apikey string) *Client {
	return &Client{
		base:   fmt.Sprintf("http://%s/api/", host),
		apikey: apikey,
		client: &http.Client{Timeout: time.Second * 10},
	}
}

// FetchJSON GETs an API path and unmarshals the response into out
func (c *Client) FetchJSON(path string, out interface{}) error {
	req, err := http.NewRequest("GET", c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apikey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	logrus.Debugf("mBox GET %s: %s", path, strings.TrimSpace(string(body)))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mBox API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}

// PutJSON writes a Command to an API path, fire-and-forget
func (c *Client) PutJSON(path string, cmd Command) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	logrus.Debugf("mBox PUT %s: %s", path, string(body))

	req, err := http.NewRequest("PUT", c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apikey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := ioutil.ReadAll(resp.Body)
		return fmt.Errorf("mBox API error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}
