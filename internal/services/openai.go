package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/utils"
)

// ChatTurn is one entry in the conversational context sent to the
// completion provider.
type ChatTurn struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type CompletionClient interface {
  Complete(ctx context.Context, turns []ChatTurn) (string, error)
}

type openAIService struct {
  log         *logger.Logger
  client      *http.Client
  baseURL     string
  apiKey      string
  model       string
  temperature float64
}

type chatCompletionRequest struct {
  Model       string     `json:"model"`
  Messages    []ChatTurn `json:"messages"`
  Temperature float64    `json:"temperature"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

func NewOpenAIService(log *logger.Logger) (CompletionClient, error) {
  serviceLog := log.With("service", "OpenAIService")
  apiKey := os.Getenv("OPENAI_API_KEY")
  if apiKey == "" {
    serviceLog.Warn("OPENAI_API_KEY not set; completion calls will be unauthorized")
  }
  baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", serviceLog)
  model := utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini", serviceLog)
  // Low temperature: the coach should be consistent, not creative.
  temperature := utils.GetEnvAsFloat("OPENAI_TEMPERATURE", 0.4, serviceLog)
  httpClient := &http.Client{
    Timeout: 30 * time.Second,
  }
  return &openAIService{
    log:         serviceLog,
    client:      httpClient,
    baseURL:     strings.TrimRight(baseURL, "/"),
    apiKey:      apiKey,
    model:       model,
    temperature: temperature,
  }, nil
}

func (oa *openAIService) Complete(ctx context.Context, turns []ChatTurn) (string, error) {
  payload := chatCompletionRequest{
    Model:       oa.model,
    Messages:    turns,
    Temperature: oa.temperature,
  }
  body, err := json.Marshal(payload)
  if err != nil {
    oa.log.Warn("failed to marshal completion request", "error", err)
    return "", err
  }
  reqURL := oa.baseURL + "/chat/completions"
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
  if err != nil {
    oa.log.Warn("failed to build completion request", "error", err)
    return "", err
  }
  req.Header.Set("Content-Type", "application/json")
  if oa.apiKey != "" {
    req.Header.Set("Authorization", "Bearer "+oa.apiKey)
  }
  resp, err := oa.client.Do(req)
  if err != nil {
    oa.log.Warn("completion call failed", "error", err)
    return "", fmt.Errorf("completion call failed: %w", apperrors.ErrUpstream)
  }
  defer resp.Body.Close()

  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    bodyBytes, _ := io.ReadAll(resp.Body)
    oa.log.Warn("completion provider responded with non-2xx", "statusCode", resp.StatusCode, "body", string(bodyBytes))
    return "", fmt.Errorf("completion provider HTTP %d: %w", resp.StatusCode, apperrors.ErrUpstream)
  }
  var out chatCompletionResponse
  if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
    oa.log.Warn("failed to decode completion response", "error", err)
    return "", fmt.Errorf("bad completion response: %w", apperrors.ErrUpstream)
  }
  if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
    oa.log.Warn("completion provider returned an empty completion")
    return "", fmt.Errorf("empty completion: %w", apperrors.ErrUpstream)
  }
  return out.Choices[0].Message.Content, nil
}
