package tool

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

type queryArgs struct {
	Query string `json:"query" description:"Free text query string"`
}

// NewWebSearchTool returns a tool that queries an upstream search endpoint
// with a free text query. Failures are reported in the result text so that a
// failed lookup does not abort the surrounding step.
func NewWebSearchTool(client *http.Client, baseURL string) *FunctionTool {
	if client == nil {
		client = http.DefaultClient
	}
	return NewFunctionToolFromStruct(
		"web_search",
		"Search the web for up-to-date information",
		queryArgs{},
		func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			body, err := httpGet(ctx, client, baseURL, url.Values{"q": {query}}, nil)
			if err != nil {
				return fmt.Sprintf("web_search tool failed: %v", err), nil
			}
			return body, nil
		},
		WithActionText("Searching the web..."),
	)
}

type scrapeArgs struct {
	URL string `json:"url" description:"The URL to scrape content from"`
}

var (
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// NewWebScrapeTool returns a tool that fetches a page and reduces it to plain
// text by stripping markup.
func NewWebScrapeTool(client *http.Client) *FunctionTool {
	if client == nil {
		client = http.DefaultClient
	}
	return NewFunctionToolFromStruct(
		"web_scrape",
		"Fetch a web page and return its readable text content",
		scrapeArgs{},
		func(ctx context.Context, args map[string]any) (any, error) {
			target, _ := args["url"].(string)
			body, err := httpGet(ctx, client, target, nil, map[string]string{
				"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			})
			if err != nil {
				return fmt.Sprintf("web_scrape tool failed: %v", err), nil
			}
			text := scriptRe.ReplaceAllString(body, " ")
			text = tagRe.ReplaceAllString(text, " ")
			text = spaceRe.ReplaceAllString(text, " ")
			return strings.TrimSpace(text), nil
		},
		WithActionText("Reading the page..."),
	)
}

type bankAccountArgs struct {
	Params map[string]any `json:"params,omitempty" description:"Query parameters: bank_name, status, search, date_from, start_date, end_date"`
}

// NewBankAccountAPITool returns a tool that fetches bank account requests
// from the internal records API.
func NewBankAccountAPITool(client *http.Client, baseURL, authToken string) *FunctionTool {
	if client == nil {
		client = http.DefaultClient
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/bank-account/request"
	headers := map[string]string{}
	if authToken != "" {
		headers["Authorization"] = "Bearer " + authToken
	}
	return NewFunctionToolFromStruct(
		"bank_account_api",
		"Fetch bank account requests. Provide optional params with keys: bank_name, status, search, date_from, start_date, end_date.",
		bankAccountArgs{},
		func(ctx context.Context, args map[string]any) (any, error) {
			values := url.Values{}
			if params, ok := args["params"].(map[string]any); ok {
				for k, v := range params {
					values.Set(k, fmt.Sprintf("%v", v))
				}
			}
			body, err := httpGet(ctx, client, endpoint, values, headers)
			if err != nil {
				return fmt.Sprintf("bank_account_api tool failed: %v", err), nil
			}
			return body, nil
		},
		WithActionText("Checking transaction records..."),
	)
}

type dailyQuoteArgs struct {
	Category string `json:"category,omitempty" description:"Type of quote (e.g. 'motivational', 'funny')"`
}

var dailyQuotes = []string{
	"Believe you can and you're halfway there. - Theodore Roosevelt",
	"The only way to do great work is to love what you do. - Steve Jobs",
	"If you're going through hell, keep going. - Winston Churchill",
	"Your time is limited, don't waste it living someone else's life. - Steve Jobs",
	"Stay hungry, stay foolish. - Steve Jobs",
	"The best way to predict the future is to create it. - Peter Drucker",
	"Everything you've ever wanted is on the other side of fear. - George Addair",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"Hardships often prepare ordinary people for an extraordinary destiny. - C.S. Lewis",
	"The only limit to our realization of tomorrow will be our doubts of today. - Franklin D. Roosevelt",
}

// NewDailyQuoteTool returns a tool serving a random inspirational quote.
func NewDailyQuoteTool() *FunctionTool {
	return NewFunctionToolFromStruct(
		"daily_quote",
		"Search for a random inspirational or funny quote",
		dailyQuoteArgs{},
		func(_ context.Context, _ map[string]any) (any, error) {
			return dailyQuotes[rand.Intn(len(dailyQuotes))], nil
		},
		WithActionText("Incubating some inspiration..."),
	)
}

func httpGet(ctx context.Context, client *http.Client, rawURL string, params url.Values, headers map[string]string) (string, error) {
	target := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
