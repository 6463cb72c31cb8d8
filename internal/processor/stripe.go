package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
)

// EscrowProcessor é a fronteira com o processador de pagamento.
// Valores sempre em centavos. Authorize cria a custódia (manual capture),
// Capture libera (0 = valor total autorizado), Refund devolve e Cancel
// cancela uma autorização não capturada.
type EscrowProcessor interface {
	Authorize(ctx context.Context, valorCentavos int64, metadata map[string]string) (string, error)
	Capture(ctx context.Context, intentID string, valorCentavos int64) error
	Refund(ctx context.Context, intentID string, valorCentavos int64) error
	Cancel(ctx context.Context, intentID string) error
}

// StripeClient implementa EscrowProcessor via API REST da Stripe,
// usando PaymentIntents com capture_method=manual como custódia.
type StripeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStripeClient cria o cliente do processador.
func NewStripeClient(baseURL, apiKey string) *StripeClient {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type intentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Authorize cria um PaymentIntent com captura manual. O valor fica
// autorizado no cartão do cliente sem ser capturado.
func (c *StripeClient) Authorize(ctx context.Context, valorCentavos int64, metadata map[string]string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(valorCentavos, 10))
	form.Set("currency", "brl")
	form.Set("capture_method", "manual")
	form.Set("confirm", "true")
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	resp, err := c.post(ctx, "/v1/payment_intents", form)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Capture captura um intent autorizado. valorCentavos 0 captura o total;
// um valor menor captura parcialmente e a Stripe devolve o restante.
func (c *StripeClient) Capture(ctx context.Context, intentID string, valorCentavos int64) error {
	form := url.Values{}
	if valorCentavos > 0 {
		form.Set("amount_to_capture", strconv.FormatInt(valorCentavos, 10))
	}

	_, err := c.post(ctx, fmt.Sprintf("/v1/payment_intents/%s/capture", intentID), form)
	return err
}

// Refund devolve um valor já capturado. valorCentavos 0 devolve o total.
func (c *StripeClient) Refund(ctx context.Context, intentID string, valorCentavos int64) error {
	form := url.Values{}
	form.Set("payment_intent", intentID)
	if valorCentavos > 0 {
		form.Set("amount", strconv.FormatInt(valorCentavos, 10))
	}

	_, err := c.post(ctx, "/v1/refunds", form)
	return err
}

// Cancel cancela um intent ainda não capturado, liberando a autorização.
func (c *StripeClient) Cancel(ctx context.Context, intentID string) error {
	_, err := c.post(ctx, fmt.Sprintf("/v1/payment_intents/%s/cancel", intentID), url.Values{})
	return err
}

func (c *StripeClient) post(ctx context.Context, path string, form url.Values) (*intentResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "não foi possível montar a requisição ao processador")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "processador de pagamento indisponível")
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "não foi possível ler a resposta do processador")
	}

	var parsed intentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentGateway, "resposta inválida do processador")
	}

	if httpResp.StatusCode >= 400 {
		msg := "erro no processador de pagamento"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, apperror.New(apperror.ErrCodePaymentGateway, msg)
	}

	return &parsed, nil
}
