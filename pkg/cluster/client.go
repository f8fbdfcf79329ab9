package cluster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/runningwild/mbench/pkg/config"
	"github.com/runningwild/mbench/pkg/report"
)

// Client fans a benchmark run out to remote agents and merges their
// reports. Each agent measures sequentially on its own machine; the
// fan-out only parallelizes across machines, never within one
// measurement.
type Client struct {
	nodes []string
}

func New(nodes []string) *Client {
	return &Client{nodes: nodes}
}

// Run sends the same configuration to every node and merges the
// resulting reports with node-prefixed labels. Any node failing fails
// the whole run; a partial comparison across machines is worse than
// none.
func (c *Client) Run(cfg *config.Config) (*report.Report, error) {
	if len(c.nodes) == 0 {
		return nil, fmt.Errorf("no agent nodes configured")
	}

	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	reports := make([]*report.Report, len(c.nodes))
	errs := make([]error, len(c.nodes))

	for i, node := range c.nodes {
		wg.Add(1)
		go func(i int, node string) {
			defer wg.Done()
			reports[i], errs[i] = c.runOne(node, body)
		}(i, node)
	}
	wg.Wait()

	byNode := make(map[string]*report.Report, len(c.nodes))
	for i, node := range c.nodes {
		if errs[i] != nil {
			return nil, fmt.Errorf("node %s: %w", node, errs[i])
		}
		name := nodeName(node)
		if _, taken := byNode[name]; taken {
			name = node // two agents on one host, keep the port
		}
		byNode[name] = reports[i]
	}
	return report.Merge(byNode), nil
}

func (c *Client) runOne(node string, body []byte) (*report.Report, error) {
	url := node
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	url += "/run"

	// No client timeout: a benchmark run legitimately takes as long as
	// trials x units takes.
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("agent returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var rep report.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// nodeName strips the port for label prefixes.
func nodeName(node string) string {
	host := node
	if i := strings.LastIndex(node, ":"); i > 0 {
		host = node[:i]
	}
	return host
}
