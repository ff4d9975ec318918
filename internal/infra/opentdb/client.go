package opentdb

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"trivia-quiz/internal/domain"
)

// DefaultBaseURL is the public Open Trivia Database.
const DefaultBaseURL = "https://opentdb.com"

// Response codes returned in the "response_code" field.
const (
	codeSuccess      = 0
	codeNoResults    = 1
	codeInvalidParam = 2
	codeTokenMissing = 3
	codeTokenEmpty   = 4
	codeRateLimit    = 5
)

// Client reads categories and questions from the trivia API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

type questionsResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []domain.Question `json:"results"`
}

// ListCategories returns the categories in API order.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var body categoriesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		ForceContentType("application/json").
		Get("/api_category.php")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("list categories: unexpected status %d", resp.StatusCode())
	}
	categories := make([]domain.Category, 0, len(body.TriviaCategories))
	for _, cat := range body.TriviaCategories {
		categories = append(categories, domain.Category{ID: cat.ID, Name: html.UnescapeString(cat.Name)})
	}
	return categories, nil
}

// FetchQuestions requests amount multiple-choice questions. DifficultyAny
// leaves the difficulty filter off.
func (c *Client) FetchQuestions(ctx context.Context, categoryID int, difficulty domain.Difficulty, amount int) ([]domain.Question, error) {
	if amount <= 0 {
		amount = 10
	}
	params := map[string]string{
		"amount":   strconv.Itoa(amount),
		"category": strconv.Itoa(categoryID),
		"type":     "multiple",
	}
	if difficulty != "" && difficulty != domain.DifficultyAny {
		params["difficulty"] = string(difficulty)
	}

	var body questionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		ForceContentType("application/json").
		Get("/api.php")
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, fmt.Errorf("fetch questions: rate limited")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch questions: unexpected status %d", resp.StatusCode())
	}
	if err := responseError(body.ResponseCode); err != nil {
		return nil, fmt.Errorf("fetch questions category=%d difficulty=%s: %w", categoryID, difficulty, err)
	}
	if len(body.Results) == 0 {
		return nil, domain.ErrNoResults
	}
	return decodeQuestions(body.Results), nil
}

func responseError(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return domain.ErrNoResults
	case codeInvalidParam:
		return fmt.Errorf("invalid parameter")
	case codeTokenMissing, codeTokenEmpty:
		return fmt.Errorf("session token rejected (code %d)", code)
	case codeRateLimit:
		return fmt.Errorf("rate limited")
	default:
		return fmt.Errorf("response code %d", code)
	}
}

// decodeQuestions turns HTML-entity encoded fields into plain text.
func decodeQuestions(raw []domain.Question) []domain.Question {
	out := make([]domain.Question, len(raw))
	for i, q := range raw {
		incorrect := make([]string, len(q.IncorrectAnswers))
		for j, a := range q.IncorrectAnswers {
			incorrect[j] = html.UnescapeString(a)
		}
		out[i] = domain.Question{
			Text:             html.UnescapeString(q.Text),
			Category:         html.UnescapeString(q.Category),
			Difficulty:       q.Difficulty,
			CorrectAnswer:    html.UnescapeString(q.CorrectAnswer),
			IncorrectAnswers: incorrect,
		}
	}
	return out
}
