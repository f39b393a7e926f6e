// Package llm é o cliente HTTP do servidor de modelos (API compatível com Ollama).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrTimeout indica que o servidor de modelos não respondeu dentro do prazo.
	ErrTimeout = errors.New("llm: tempo limite excedido")
	// ErrEmptyCompletion indica resposta vazia após remover espaços.
	ErrEmptyCompletion = errors.New("llm: resposta vazia do modelo")
)

// StatusError é retornado quando o servidor responde com status diferente de 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: servidor respondeu %d: %s", e.Code, e.Body)
}

// Sequências que encerram a geração antes que o modelo escreva o próximo turno.
var defaultStop = []string{"User:", "JJ:", "\nUser", "\nJJ", "<|im_end|>", "<|im_start|>", "<|end|>"}

// Message é uma mensagem no formato da API de chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options são os parâmetros de amostragem enviados a cada chamada.
type Options struct {
	Stop        []string `json:"stop,omitempty"`
	Temperature float64  `json:"temperature"`
	NumPredict  int      `json:"num_predict"`
}

// Config agrupa o endereço e os padrões do cliente.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Client fala com /api/chat e /api/generate.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	options Options
	latency *prometheus.HistogramVec
}

// NewClient cria o cliente; reg pode ser nil quando métricas não são necessárias.
func NewClient(cfg Config, reg prometheus.Registerer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// O prazo de cada chamada vem do contexto; o transporte não impõe outro.
		http:    &http.Client{},
		timeout: timeout,
		options: Options{
			Stop:        defaultStop,
			Temperature: cfg.Temperature,
			NumPredict:  cfg.MaxTokens,
		},
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medstock",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Latência das chamadas ao servidor de modelos por resultado.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"endpoint", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(c.latency)
	}
	return c
}

type chatRequest struct {
	Model    string    `json:"model"`
	Stream   bool      `json:"stream"`
	Options  Options   `json:"options"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Chat envia a conversa estruturada e retorna o conteúdo da resposta.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	var out chatResponse
	return c.post(ctx, "/api/chat", chatRequest{Model: model, Options: c.options, Messages: messages}, &out,
		func() string { return out.Message.Content })
}

// Generate envia um prompt único (transcrição completa) e retorna o texto gerado.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	var out generateResponse
	return c.post(ctx, "/api/generate", generateRequest{Model: model, Prompt: prompt, Options: c.options}, &out,
		func() string { return out.Response })
}

// post faz a chamada e extrai o texto com text depois de decodificar out.
// A métrica de latência é registrada com o resultado final, inclusive resposta vazia.
func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}, text func() string) (completion string, err error) {
	start := time.Now()
	defer func() {
		c.latency.WithLabelValues(endpoint, outcome(err)).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("llm: falha ao serializar requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: falha ao montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("llm: falha na chamada: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("llm: resposta inválida: %w", err)
	}

	completion = strings.TrimSpace(text())
	if completion == "" {
		return "", ErrEmptyCompletion
	}
	return completion, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrEmptyCompletion):
		return "empty"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "error"
	}
}
