package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type action struct {
	Name        string
	Description string
}

type model struct {
	actions  []action
	selected int
	status   string
	output   string
	busy     bool
	client   *shopClient
}

func initialModel(client *shopClient) model {
	return model{
		actions: []action{
			{"products", "List the catalog"},
			{"cart", "Show my cart"},
			{"add", "Add first product to cart"},
			{"checkout", "Check out my cart"},
			{"orders", "List my orders"},
		},
		status: "Ready",
		client: client,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
		case "down":
			if m.selected < len(m.actions)-1 {
				m.selected++
			}
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Running..."
			name := m.actions[m.selected].Name
			return m, runActionCmd(m.client, name)
		}
	case actionResult:
		m.busy = false
		m.status = msg.status
		m.output = msg.output
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "shop-csv-go CLI")
	fmt.Fprintln(b, "")
	for i, a := range m.actions {
		marker := " "
		if i == m.selected {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s - %s\n", marker, a.Name, a.Description)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	if m.output != "" {
		fmt.Fprintf(b, "\n%s\n", m.output)
	}
	fmt.Fprintln(b, "\nControls: up/down select, enter to run, q to quit")
	return b.String()
}

type actionResult struct {
	status string
	output string
}

func runActionCmd(client *shopClient, name string) tea.Cmd {
	return func() tea.Msg {
		out, err := runAction(client, name)
		if err != nil {
			return actionResult{status: fmt.Sprintf("%s failed: %v", name, err)}
		}
		return actionResult{status: name + " OK", output: out}
	}
}

func runAction(client *shopClient, name string) (string, error) {
	switch name {
	case "products":
		return client.get("/api/products")
	case "cart":
		return client.get("/api/cart")
	case "add":
		id, err := client.firstProductID()
		if err != nil {
			return "", err
		}
		return client.post("/api/cart", map[string]any{"productId": id, "quantity": 1}, "")
	case "checkout":
		return client.post("/api/orders/checkout", nil, uuid.NewString())
	case "orders":
		return client.get("/api/orders")
	default:
		return "", fmt.Errorf("unknown action %q", name)
	}
}

type shopClient struct {
	baseURL string
	email   string
	pass    string
	token   string
	http    *http.Client
}

func newShopClient() *shopClient {
	return &shopClient{
		baseURL: strings.TrimRight(getenv("SHOP_BASE_URL", "http://localhost:4000"), "/"),
		email:   getenv("SHOP_EMAIL", ""),
		pass:    getenv("SHOP_PASSWORD", ""),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *shopClient) login() error {
	if c.token != "" {
		return nil
	}
	if c.email == "" || c.pass == "" {
		return fmt.Errorf("SHOP_EMAIL and SHOP_PASSWORD are required")
	}
	body, err := c.do(http.MethodPost, "/api/auth/login", map[string]any{"email": c.email, "password": c.pass}, "", false)
	if err != nil {
		return err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *shopClient) get(path string) (string, error) {
	return c.do(http.MethodGet, path, nil, "", true)
}

func (c *shopClient) post(path string, payload any, idemKey string) (string, error) {
	return c.do(http.MethodPost, path, payload, idemKey, true)
}

func (c *shopClient) do(method, path string, payload any, idemKey string, authed bool) (string, error) {
	if authed {
		if err := c.login(); err != nil {
			return "", err
		}
	}
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return string(data), nil
}

func (c *shopClient) firstProductID() (string, error) {
	body, err := c.get("/api/products")
	if err != nil {
		return "", err
	}
	var products []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(body), &products); err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "", fmt.Errorf("catalog is empty")
	}
	return products[0].ID, nil
}

func main() {
	runCmd := flag.String("run", "", "run one action: products|cart|add|checkout|orders")
	flag.Parse()

	client := newShopClient()

	if *runCmd != "" {
		out, err := runAction(client, *runCmd)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	p := tea.NewProgram(initialModel(client))
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
