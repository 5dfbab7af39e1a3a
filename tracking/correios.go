package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Correios tracks shipments through the Correios SRO API.
type Correios struct {
	BaseURL string
	Client  *http.Client
}

func NewCorreios() *Correios {
	base := os.Getenv("CORREIOS_BASE_URL")
	if base == "" {
		base = "https://proxyapp.correios.com.br/v1"
	}
	return &Correios{
		BaseURL: base,
		Client:  defaultClient(),
	}
}

type correiosTrackingResponse struct {
	Objetos []correiosObjeto `json:"objetos"`
}

type correiosObjeto struct {
	Status  string           `json:"status"`
	Eventos []correiosEvento `json:"eventos"`
}

type correiosEvento struct {
	Data      string `json:"data"`
	Hora      string `json:"hora"`
	Status    string `json:"status"`
	Descricao string `json:"descricao"`
	Detalhe   string `json:"detalhe"`
	Local     string `json:"local"`
}

const correiosTimeLayout = "02/01/2006 15:04"

func (co *Correios) Track(ctx context.Context, trackingNumber string) Result {
	url := fmt.Sprintf("%s/sro-objeto/%s", co.BaseURL, trackingNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errorResult(trackingNumber, fmt.Sprintf("failed to build Correios request: %v", err))
	}

	resp, err := co.Client.Do(req)
	if err != nil {
		return errorResult(trackingNumber, fmt.Sprintf("failed to reach Correios: %v", err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return errorResult(trackingNumber, fmt.Sprintf("correios API error (%d): %s", resp.StatusCode, string(body)))
	}

	var correiosResp correiosTrackingResponse
	if err := json.Unmarshal(body, &correiosResp); err != nil {
		return errorResult(trackingNumber, fmt.Sprintf("failed to parse Correios response: %v", err))
	}

	if len(correiosResp.Objetos) == 0 {
		return errorResult(trackingNumber, "tracking number not found or has no events")
	}

	objeto := correiosResp.Objetos[0]
	result := Result{
		TrackingNumber: trackingNumber,
		Status:         objeto.Status,
		IsDelivered:    strings.Contains(strings.ToLower(objeto.Status), "entregue"),
	}

	for _, ev := range objeto.Eventos {
		description := ev.Descricao
		if description == "" {
			description = ev.Detalhe
		}
		result.Events = append(result.Events, Event{
			Status:      ev.Status,
			Description: description,
			Timestamp:   ev.Data + " " + ev.Hora,
			Location:    ev.Local,
		})
	}
	sortEventsDesc(result.Events, func(ev Event) (time.Time, error) {
		return time.Parse(correiosTimeLayout, ev.Timestamp)
	})

	return result
}
