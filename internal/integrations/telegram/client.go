package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultBaseURL адрес Bot API
const DefaultBaseURL = "https://api.telegram.org"

// Client клиент Telegram Bot API поверх telegram-bot-api.
// Библиотека не принимает context, поэтому контекст прокидывается в каждый HTTP запрос через contextClient.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient создает новый экземпляр клиента Bot API.
// timeout ограничивает обычные запросы; для long polling к нему добавляется время ожидания.
// getMe при создании не вызывается: токен проверяется первым запросом.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/bot%s/%s",
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// SendMessage отправляет текстовое сообщение в чат
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	if _, err := c.api(ctx, c.httpClient).Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return classify("sendMessage", err)
	}
	return nil
}

// GetUpdates получает новые обновления начиная с offset, ожидая до timeout на стороне сервера
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	cfg := tgbotapi.UpdateConfig{
		Offset:         int(offset),
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: []string{"message"},
	}

	pollClient := &http.Client{Timeout: c.timeout + timeout}

	updates, err := c.api(ctx, pollClient).GetUpdates(cfg)
	if err != nil {
		return nil, classify("getUpdates", err)
	}
	return updates, nil
}

// api экземпляр BotAPI, все запросы которого идут с контекстом ctx
func (c *Client) api(ctx context.Context, httpClient *http.Client) *tgbotapi.BotAPI {
	api := &tgbotapi.BotAPI{
		Token:  c.token,
		Client: contextClient{ctx: ctx, client: httpClient},
	}
	api.SetAPIEndpoint(c.endpoint)
	return api
}

// classify переводит ошибки библиотеки в ошибки пакета
func classify(method string, err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: code %d: %s", ErrAPI, method, apiErr.Code, apiErr.Message)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s: failed to execute request: %w", ErrInternal, method, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, method, err)
}

// contextClient tgbotapi.HTTPClient, привязывающий запросы к контексту вызова
type contextClient struct {
	ctx    context.Context
	client *http.Client
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}
