package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/farrdeeen/FastOrderLogic/internal/config"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

// Client wraps the Zoho Books v3 API plus the OAuth dance that feeds
// it. Access tokens are refreshed lazily through the token store.
type Client struct {
	httpClient *http.Client
	cfg        config.ZohoConfig
	store      *TokenStore
	log        logger.Logger
}

func NewClient(cfg config.ZohoConfig, store *TokenStore, log logger.Logger) *Client {
	return &Client{
		cfg:   cfg,
		store: store,
		log:   log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthURL builds the consent URL the operator opens in a browser.
func (c *Client) AuthURL() string {
	q := url.Values{}
	q.Set("scope", "ZohoBooks.fullaccess.all")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	return c.cfg.AccountsBase + "/oauth/v2/auth?" + q.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Error        string `json:"error"`
}

// ExchangeCode trades the one-time consent code for tokens and
// persists them.
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	tr, err := c.postToken(ctx, form)
	if err != nil {
		return err
	}
	if tr.RefreshToken == "" {
		return fmt.Errorf("zoho: token response missing refresh_token")
	}

	tokens := Tokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	if err := c.store.Save(tokens); err != nil {
		return err
	}
	c.log.Info("zoho tokens stored")
	return nil
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	tr, err := c.postToken(ctx, form)
	if err != nil {
		return Tokens{}, err
	}

	tokens := Tokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	if err := c.store.Save(tokens); err != nil {
		return Tokens{}, err
	}
	c.log.Info("zoho access token refreshed")
	return tokens, nil
}

func (c *Client) postToken(ctx context.Context, form url.Values) (tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AccountsBase+"/oauth/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("call zoho accounts: %w", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	if tr.Error != "" {
		return tokenResponse{}, fmt.Errorf("zoho oauth error: %s", tr.Error)
	}
	if tr.AccessToken == "" {
		return tokenResponse{}, fmt.Errorf("zoho: token response missing access_token")
	}
	return tr, nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	tokens, err := c.store.Load()
	if err != nil {
		return "", err
	}
	if tokens.Expired(time.Now()) {
		tokens, err = c.refresh(ctx, tokens.RefreshToken)
		if err != nil {
			return "", err
		}
	}
	return tokens.AccessToken, nil
}

// Connected reports whether a usable refresh token is on disk.
func (c *Client) Connected() bool {
	_, err := c.store.Load()
	return err == nil
}

type apiEnvelope struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Contacts []Contact       `json:"contacts"`
	Contact  *Contact        `json:"contact"`
	Items    []Item          `json:"items"`
	Invoice  json.RawMessage `json:"invoice"`
	Invoices []Invoice       `json:"invoices"`
}

// Contact is a Zoho Books contact.
type Contact struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
}

// Item is a Zoho Books catalog item.
type Item struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description"`
}

// InvoiceLine is one invoice row. Rate is a plain float because Books
// rejects string-encoded numbers.
type InvoiceLine struct {
	ItemID      string  `json:"item_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Invoice is the creation result.
type Invoice struct {
	InvoiceID     string  `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any) (*apiEnvelope, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("organization_id", c.cfg.OrgID)

	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method,
		c.cfg.APIBase+path+"?"+query.Encode(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call zoho books: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || env.Code != 0 {
		return nil, fmt.Errorf("zoho books error %d: %s", env.Code, env.Message)
	}
	return &env, nil
}

// FindItemBySKU looks up a catalog item by SKU. Returns nil when the
// SKU is unknown to Books.
func (c *Client) FindItemBySKU(ctx context.Context, sku string) (*Item, error) {
	q := url.Values{}
	q.Set("sku", sku)
	env, err := c.call(ctx, http.MethodGet, "/items", q, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Items) == 0 {
		return nil, nil
	}
	return &env.Items[0], nil
}

// FindOrCreateContact resolves a Books contact by mobile, then email,
// then name, creating one when nothing matches.
func (c *Client) FindOrCreateContact(ctx context.Context, name, mobile, email string) (*Contact, error) {
	searches := []struct{ key, value string }{
		{"phone", mobile},
		{"email", email},
		{"contact_name", name},
	}
	for _, s := range searches {
		if s.value == "" {
			continue
		}
		q := url.Values{}
		q.Set(s.key, s.value)
		env, err := c.call(ctx, http.MethodGet, "/contacts", q, nil)
		if err != nil {
			return nil, err
		}
		if len(env.Contacts) > 0 {
			return &env.Contacts[0], nil
		}
	}

	if name == "" {
		name = "Walk-in Customer"
	}
	payload := map[string]any{
		"contact_name": name,
		"contact_persons": []map[string]any{
			{
				"first_name": name,
				"mobile":     mobile,
				"email":      email,
				"is_primary_contact": true,
			},
		},
	}
	env, err := c.call(ctx, http.MethodPost, "/contacts", nil, payload)
	if err != nil {
		return nil, err
	}
	if env.Contact == nil {
		return nil, fmt.Errorf("zoho: contact creation returned no contact")
	}
	c.log.Info("created zoho contact",
		logger.String("contact_id", env.Contact.ContactID),
		logger.String("name", name),
	)
	return env.Contact, nil
}

// CreateInvoice posts an invoice for the contact and returns the Books
// invoice identifiers.
func (c *Client) CreateInvoice(ctx context.Context, contactID, referenceNumber string, date time.Time, lines []InvoiceLine) (*Invoice, error) {
	payload := map[string]any{
		"customer_id":      contactID,
		"reference_number": referenceNumber,
		"date":             date.Format("2006-01-02"),
		"line_items":       lines,
	}
	env, err := c.call(ctx, http.MethodPost, "/invoices", nil, payload)
	if err != nil {
		return nil, err
	}

	var inv Invoice
	if err := json.Unmarshal(env.Invoice, &inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	if inv.InvoiceID == "" {
		return nil, fmt.Errorf("zoho: invoice creation returned no invoice")
	}
	return &inv, nil
}

// FindInvoiceByReference resolves a Books invoice by its reference
// number (we store the order id there). Nil when none exists.
func (c *Client) FindInvoiceByReference(ctx context.Context, referenceNumber string) (*Invoice, error) {
	q := url.Values{}
	q.Set("reference_number", referenceNumber)
	env, err := c.call(ctx, http.MethodGet, "/invoices", q, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Invoices) == 0 {
		return nil, nil
	}
	return &env.Invoices[0], nil
}

// InvoicePDF downloads the rendered invoice document.
func (c *Client) InvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("organization_id", c.cfg.OrgID)
	q.Set("accept", "pdf")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.APIBase+"/invoices/"+invoiceID+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call zoho books: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("zoho books returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
