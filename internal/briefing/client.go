package briefing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/logger"
)

// ErrNoAPIKey is returned when no assistant key is configured
var ErrNoAPIKey = errors.New("no OpenAI API key configured, run 'leitstand key set' first")

const briefingPrompt = "Du bist ein Assistent für die Verkehrsleitung eines Busunternehmens.\n" +
	"Du erhältst strukturierte Daten (Abwesenheiten, Baustellen, Fahrten, Termine, To-Dos, Schulungen) und sollst daraus ein klar strukturiertes, tabellarisches Briefing erstellen.\n\n" +
	"Die Ausgabe hat IMMER folgende Abschnitte mit deutschen Überschriften:\n\n" +
	"### Heute – Kritische Punkte (rot)\n" +
	"### Heute – Wichtige Punkte (gelb)\n" +
	"### Heute – Normale Punkte (grün)\n" +
	"### Nächste 7 Tage – Kritische Punkte (rot)\n" +
	"### Nächste 7 Tage – Geplante Punkte (grün)\n\n" +
	"Jeder Abschnitt besteht aus EINER Tabelle mit folgenden Spalten:\n\n" +
	"Kategorie | Beschreibung | Zeitraum | Personalnummer | Details\n\n" +
	"Formatregeln:\n" +
	"- Datum IMMER: TT.MM.JJJJ (deutsches Format).\n" +
	"- Zeitraum IMMER: TT.MM.JJJJ oder TT.MM.JJJJ–TT.MM.JJJJ.\n" +
	"- Spalte \"Personalnummer\" MUSS IMMER gefüllt sein: Wenn im Datensatz eine Personalnummer vorhanden ist (Feld \"personalNumber\"), schreibe dort exakt \"PN <Nummer>\" (z. B. \"PN 241\"). Wenn keine Personalnummer vorhanden ist, schreibe ein einzelnes \"-\". Lasse diese Spalte NIEMALS leer.\n" +
	"- Insbesondere bei Abwesenheiten (type \"absence\") MUSS die vorhandene Personalnummer immer als \"PN <Nummer>\" in der Spalte \"Personalnummer\" stehen.\n" +
	"- KEINE Klarnamen.\n" +
	"- KEINE Absätze oder Fließtexte außerhalb der Tabellen.\n" +
	"- KEINE Erklärtexte, sondern klare Tabellen.\n\n" +
	"Sortiere die Einträge nach Datum → Ampel (rot/gelb/grün) → Kategorie.\n\n" +
	"Fasse dich in den Details kurz (max. 1 Satz)."

const questionPrompt = "Du bist ein Assistent für die Verkehrsleitung eines Busunternehmens. " +
	"Du beantwortest eine freie Frage auf Basis der übergebenen kompakten Daten (heute und nächste 7 Tage). " +
	"Du darfst NUR lesen, bewerten und erklären, aber KEINE Schreib- oder Änderungsaktionen an Diensten oder Daten ausführen. " +
	"Erkläre kurz und sachlich auf Deutsch, ohne Klarnamen zu verwenden."

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	Endpoint    string
	Model       string
	Temperature float64
	APIKey      string
	HTTPClient  *http.Client
}

// Client talks to an OpenAI compatible chat-completions endpoint
type Client struct {
	endpoint    string
	model       string
	temperature float64
	apiKey      string
	http        *http.Client
}

func NewClient(opts Options) *Client {
	c := &Client{
		endpoint:    opts.Endpoint,
		model:       opts.Model,
		temperature: opts.Temperature,
		apiKey:      opts.APIKey,
		http:        opts.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = constants.OpenAIChatCompletionsURL
	}
	if c.model == "" {
		c.model = constants.DefaultOpenAIModel
	}
	if c.temperature == 0 {
		c.temperature = constants.DefaultOpenAITemperature
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate returns the tabular briefing for payload
func (c *Client) Generate(ctx context.Context, payload Payload) (string, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode briefing payload: %w", err)
	}
	return c.complete(ctx, briefingPrompt, string(content))
}

// Ask answers a free-form question about payload. The assistant is read-only.
func (c *Client) Ask(ctx context.Context, question string, payload Payload) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question cannot be empty")
	}
	content, err := json.Marshal(struct {
		Question string  `json:"question"`
		Data     Payload `json:"data"`
	}{question, payload})
	if err != nil {
		return "", fmt.Errorf("failed to encode question: %w", err)
	}
	return c.complete(ctx, questionPrompt, string(content))
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logger.Debug("Requesting completion", "model", c.model, "endpoint", c.endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("assistant request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode assistant response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
