package tracking

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
)

// Envia tracks shipments through the Envia.com API.
type Envia struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewEnvia() *Envia {
	base := os.Getenv("ENVIA_BASE_URL")
	if base == "" {
		base = "https://api.envia.com"
	}
	return &Envia{
		BaseURL: base,
		APIKey:  os.Getenv("ENVIA_API_KEY"),
		Client:  defaultClient(),
	}
}

type enviaTrackingRequest struct {
	TrackingNumbers []string `json:"tracking_numbers"`
}

type enviaTrackingResponse struct {
	Data []enviaShipment `json:"data"`
	Meta struct {
		Message string `json:"message"`
	} `json:"meta"`
}

type enviaShipment struct {
	ShipmentStatus string       `json:"shipment_status"`
	History        []enviaEvent `json:"history"`
}

type enviaEvent struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
}

func (e *Envia) Track(ctx context.Context, trackingNumber string) Result {
	payload, _ := json.Marshal(enviaTrackingRequest{TrackingNumbers: []string{trackingNumber}})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/track", bytes.NewBuffer(payload))
	if err != nil {
		return errorResult(trackingNumber, fmt.Sprintf("failed to build Envia request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.Client.Do(req)
	if err != nil {
		return errorResult(trackingNumber, fmt.Sprintf("failed to reach Envia: %v", err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return errorResult(trackingNumber, fmt.Sprintf("envia API error (%d): %s", resp.StatusCode, string(body)))
	}

	var enviaResp enviaTrackingResponse
	if err := json.Unmarshal(body, &enviaResp); err != nil {
		return errorResult(trackingNumber, fmt.Sprintf("failed to parse Envia response: %v", err))
	}

	if len(enviaResp.Data) == 0 {
		msg := enviaResp.Meta.Message
		if msg == "" {
			msg = "tracking number not found or has no events"
		}
		return errorResult(trackingNumber, msg)
	}

	shipment := enviaResp.Data[0]
	result := Result{
		TrackingNumber: trackingNumber,
		Status:         shipment.ShipmentStatus,
		IsDelivered:    strings.EqualFold(shipment.ShipmentStatus, "DELIVERED"),
	}

	for _, h := range shipment.History {
		result.Events = append(result.Events, Event{
			Status:      h.Status,
			Description: h.Description,
			Timestamp:   h.Timestamp,
			Location:    h.Location,
		})
	}
	sortEventsDesc(result.Events, func(ev Event) (time.Time, error) {
		return time.Parse(time.RFC3339, ev.Timestamp)
	})

	return result
}
